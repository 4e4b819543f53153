// Package seed builds the demo dataset loaded into a freshly
// bootstrapped tenant. The values are deterministic in shape and
// random in amounts so every demo business looks plausible but not
// identical.
package seed

import (
	"math/rand"
	"time"

	"argenbiz/internal/model"

	"github.com/shopspring/decimal"
)

type Dataset struct {
	Contacts     []model.Contact
	Products     []model.Product
	Transactions []model.Transaction
	Bookings     []model.Booking
}

var contactSeeds = []struct {
	name       string
	cuit       string
	tax        model.TaxCondition
	isClient   bool
	isProvider bool
}{
	{"Maria Lopez", "27-28456781-3", model.TaxConsumidorFinal, true, false},
	{"Carlos Gimenez", "20-31245678-9", model.TaxMonotributo, true, false},
	{"Distribuidora El Sol SRL", "30-70812345-6", model.TaxResponsableInscripto, false, true},
	{"Estudio Contable Perez", "30-65423187-2", model.TaxResponsableInscripto, true, true},
	{"Lucia Fernandez", "27-35671234-5", model.TaxConsumidorFinal, true, false},
}

var productSeeds = []struct {
	sku      string
	name     string
	price    float64
	stock    int
	minStock int
}{
	{"CAFE-250", "Cafe tostado 250g", 4800, 24, 10},
	{"YERBA-1K", "Yerba mate 1kg", 5600, 8, 12},
	{"AZUC-1K", "Azucar 1kg", 1350, 40, 15},
	{"GALLE-300", "Galletitas surtidas 300g", 2100, 18, 8},
	{"TE-CAJA", "Te en saquitos x50", 3200, 5, 6},
}

var serviceNames = []string{
	"Asesoramiento inicial",
	"Entrega a domicilio",
	"Degustacion",
}

// Build assembles the dataset. Rows carry no tenant or contact IDs;
// the loader fills those in after inserting the parents.
func Build(rng *rand.Rand, now time.Time) *Dataset {
	ds := &Dataset{}

	for _, c := range contactSeeds {
		cuit := c.cuit
		ds.Contacts = append(ds.Contacts, model.Contact{
			Name:         c.name,
			CUIT:         &cuit,
			TaxCondition: c.tax,
			IsClient:     c.isClient,
			IsProvider:   c.isProvider,
		})
	}

	iva := decimal.NewFromFloat(0.21)
	for _, p := range productSeeds {
		sku := p.sku
		ds.Products = append(ds.Products, model.Product{
			SKU:          &sku,
			Name:         p.name,
			PriceSellNet: decimal.NewFromFloat(p.price),
			IVARate:      iva,
			Stock:        p.stock,
			MinStock:     p.minStock,
		})
	}

	// A week of sales, a few per day, plus a handful of expenses. Every
	// amount stores its IVA breakdown the same way live captures do.
	salesCount := 20 + rng.Intn(6)
	for i := 0; i < salesCount; i++ {
		net := decimal.NewFromInt(int64(1500 + rng.Intn(18500))).Round(2)
		amountIVA := net.Mul(iva).Round(2)
		date := now.AddDate(0, 0, -rng.Intn(7)).Add(-time.Duration(rng.Intn(10)) * time.Hour)
		ds.Transactions = append(ds.Transactions, model.Transaction{
			Type:        model.TransactionSale,
			AmountNet:   net,
			AmountIVA:   amountIVA,
			AmountTotal: net.Add(amountIVA),
			Status:      model.TransactionPaid,
			Date:        date,
		})
	}
	for i := 0; i < 4; i++ {
		net := decimal.NewFromInt(int64(3000 + rng.Intn(12000))).Round(2)
		amountIVA := net.Mul(iva).Round(2)
		notes := "Reposicion de mercaderia"
		ds.Transactions = append(ds.Transactions, model.Transaction{
			Type:        model.TransactionExpense,
			AmountNet:   net,
			AmountIVA:   amountIVA,
			AmountTotal: net.Add(amountIVA),
			Status:      model.TransactionPaid,
			Date:        now.AddDate(0, 0, -rng.Intn(7)),
			Notes:       &notes,
		})
	}

	for i := 0; i < 3; i++ {
		start := now.AddDate(0, 0, 1+i).Truncate(time.Hour).Add(time.Duration(10+i) * time.Hour)
		ds.Bookings = append(ds.Bookings, model.Booking{
			ServiceName: serviceNames[i%len(serviceNames)],
			StartTime:   start,
			EndTime:     start.Add(45 * time.Minute),
			Status:      model.BookingConfirmed,
		})
	}

	return ds
}
