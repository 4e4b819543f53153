package rls

import (
	"fmt"

	"gorm.io/gorm"
)

// initializeTenantFn is the bootstrap/repair procedure. It executes as
// SECURITY DEFINER — the one sanctioned bypass of the isolation layer —
// so a caller that owns no tenant yet can still be given one. The
// caller's identity comes from the session context (app_identity()),
// never from an argument.
//
// The procedure is idempotent per caller: it locks the caller's profile
// row and returns the existing tenant when one is already bound, so two
// concurrent or repeated invocations never leave the identity attached
// to two different tenants.
const initializeTenantFn = `
CREATE OR REPLACE FUNCTION initialize_tenant_for_user(
    p_tenant_name TEXT,
    p_full_name TEXT
)
RETURNS JSONB
LANGUAGE plpgsql
SECURITY DEFINER
SET search_path = public
AS $$
DECLARE
    v_user_id UUID;
    v_existing UUID;
    v_new_tenant_id UUID;
BEGIN
    v_user_id := app_identity();

    IF v_user_id IS NULL THEN
        RETURN jsonb_build_object('success', false, 'error', 'usuario no autenticado');
    END IF;

    -- Check-then-act under a row lock: a repeat call joins the existing
    -- tenant instead of creating a second one.
    SELECT tenant_id INTO v_existing FROM profiles WHERE id = v_user_id FOR UPDATE;
    IF v_existing IS NOT NULL AND EXISTS (SELECT 1 FROM tenants WHERE id = v_existing) THEN
        RETURN jsonb_build_object('success', true, 'tenant_id', v_existing);
    END IF;

    INSERT INTO tenants (name, cuit, tax_condition)
    VALUES (
        p_tenant_name,
        '20' || floor(random() * 90000000 + 10000000)::text || '9',
        'Responsable Inscripto'
    )
    RETURNING id INTO v_new_tenant_id;

    INSERT INTO profiles (id, tenant_id, full_name, role)
    VALUES (v_user_id, v_new_tenant_id, p_full_name, 'Admin')
    ON CONFLICT (id) DO UPDATE
        SET tenant_id = EXCLUDED.tenant_id,
            full_name = EXCLUDED.full_name,
            updated_at = now();

    RETURN jsonb_build_object('success', true, 'tenant_id', v_new_tenant_id);
EXCEPTION WHEN OTHERS THEN
    RETURN jsonb_build_object('success', false, 'error', SQLERRM);
END;
$$`

func installBootstrapProcedure(db *gorm.DB) error {
	if err := db.Exec(initializeTenantFn).Error; err != nil {
		return fmt.Errorf("create initialize_tenant_for_user: %w", err)
	}
	grant := fmt.Sprintf("GRANT EXECUTE ON FUNCTION initialize_tenant_for_user(TEXT, TEXT) TO %s", AppRole)
	if err := db.Exec(grant).Error; err != nil {
		return fmt.Errorf("grant execute on initialize_tenant_for_user: %w", err)
	}
	return nil
}
