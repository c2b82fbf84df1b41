package core

import (
	"time"

	"supplycore/pkg/domain"
)

var seedTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func seedBase(id string) domain.Base {
	return domain.Base{ID: id, CreatedAt: seedTime, UpdatedAt: seedTime}
}

// SeedState is the dataset a fresh deployment starts from. Each collection
// is substituted independently when its key is missing or unreadable, so a
// partially corrupted medium recovers only the damaged collections.
func SeedState() state {
	return state{
		products: []Product{
			{
				Base:     seedBase("PROD-2024-1001"),
				Name:     "Insulated Steel Tumbler 20oz",
				Brand:    "Northbound",
				Category: "Drinkware",
				Status:   "active",
				Costs: domain.CostBreakdown{
					Materials: 2.40, Labor: 0.85, Packaging: 0.45,
					Overhead: 0.30, Logistics: 0.62, Inspection: 0.08,
				},
				Dimensions: domain.Dimensions{Length: 8.5, Width: 8.5, Height: 20.0, Weight: 0.32, Unit: "cm/kg"},
				SKUs: []domain.SKUVariant{
					{Code: "NB-TUM-20-BLK", Size: "20oz", RegionalPrices: map[string]float64{"US": 24.99, "EU": 22.99}},
					{Code: "NB-TUM-20-WHT", Size: "20oz", RegionalPrices: map[string]float64{"US": 24.99}},
				},
				PrimaryFactoryID: "FAC-1709283600000-101",
				Competitors: []domain.Competitor{
					{Name: "HydraPeak 20oz", Price: 19.99, Notes: "lower gauge steel"},
				},
			},
			{
				Base:     seedBase("PROD-2024-1002"),
				Name:     "Bamboo Cutting Board Set",
				Brand:    "Northbound",
				Category: "Kitchen",
				Status:   "development",
				Costs: domain.CostBreakdown{
					Materials: 3.10, Labor: 1.20, Packaging: 0.70,
					Overhead: 0.40, Logistics: 0.95, Inspection: 0.10,
				},
				Dimensions: domain.Dimensions{Length: 38, Width: 28, Height: 4, Weight: 1.1, Unit: "cm/kg"},
				SKUs: []domain.SKUVariant{
					{Code: "NB-CUT-3PC", Size: "3-piece", RegionalPrices: map[string]float64{"US": 34.99}},
				},
			},
		},
		customers: []Customer{
			{
				Base:        seedBase("CUST-2024-2001"),
				CompanyName: "Harbor Goods Co.",
				ContactName: "Dana Whitfield",
				Email:       "dana@harborgoods.example",
				Region:      "North America",
				Country:     "US",
				Tier:        "wholesale",
				Status:      "active",
				TotalSpend:  48250,
				TotalOrders: 7,
			},
		},
		shipments: []Shipment{
			{
				Base:           seedBase("SHP-2024-3001"),
				TrackingNumber: "MAEU2204418",
				Carrier:        "Maersk",
				Method:         "sea",
				Status:         "in_transit",
				Origin:         "Ningbo",
				Destination:    "Long Beach",
				ETD:            "2024-02-18",
				ETA:            "2024-03-12",
				Type:           domain.ShipmentTypeJob,
				JobID:          "JOB-2024-4001",
			},
		},
		factories: []Factory{
			{
				Base:     seedBase("FAC-1709283600000-101"),
				Name:     "Yongkang Metalware Ltd.",
				Country:  "CN",
				Location: "Yongkang, Zhejiang",
				Contact:  domain.ContactInfo{Name: "Wei Chen", Email: "wei@ykmetal.example"},
				Capabilities: []string{
					"stainless drinkware", "powder coating", "laser engraving",
				},
				MOQ:            3000,
				Capacity:       120000,
				Certifications: []string{"BSCI", "FDA"},
				Rating:         4.6,
				Status:         domain.FactoryStatusActive,
			},
			{
				Base:     seedBase("FAC-1709283600000-102"),
				Name:     "Fuzhou Bamboo Works",
				Country:  "CN",
				Location: "Fuzhou, Fujian",
				Contact:  domain.ContactInfo{Name: "Li Mei", Email: "limei@fzbamboo.example"},
				MOQ:      1000,
				Capacity: 40000,
				Rating:   4.1,
				Status:   domain.FactoryStatusVetting,
			},
		},
		jobs: []Job{
			{
				Base:               seedBase("JOB-2024-4001"),
				JobName:            "Tumbler Spring Restock",
				PONumber:           "PO-2024-0117",
				ProductRefID:       "PROD-2024-1001",
				FactoryID:          "FAC-1709283600000-101",
				CustomerID:         "CUST-2024-2001",
				Quantity:           6000,
				Status:             "in_production",
				ProductionStage:    "assembly",
				Priority:           domain.JobPriorityHigh,
				StartDate:          "2024-01-22",
				TargetDeliveryDate: "2024-03-20",
				Incoterms:          "FOB",
				ShippingMethod:     "sea",
				Destination:        "Long Beach",
				PaymentTerms:       "30/70",
				CompletionPercent:  65,
			},
		},
		samples: []SampleRequest{
			{
				Base:         seedBase("SMP-2024-5001"),
				Type:         "pre_production",
				ProductID:    "PROD-2024-1002",
				FactoryID:    "FAC-1709283600000-102",
				Status:       "requested",
				RequestDate:  "2024-02-26",
				SampleCost:   45,
				ShippingCost: 28,
			},
		},
		users: []User{
			{
				Base:  seedBase("USR-2024-6001"),
				Name:  "System Admin",
				Email: "admin@supplycore.example",
				Role:  domain.RoleSuperAdmin,
				// bcrypt("password"); replace on first login in any real deployment.
				PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
				LastActive:   seedTime,
			},
		},
		auditLog: []AuditLogEntry{},
	}
}
