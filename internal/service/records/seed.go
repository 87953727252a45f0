package records

import "github.com/mamadbah2/suraksha/internal/domain/models"

// SeedRecords returns the deterministic demo dataset used when nothing has
// been persisted yet.
func SeedRecords() []models.ServiceRecord {
	return []models.ServiceRecord{
		{
			ID:          "1",
			Name:        "Rajesh Kumar",
			Phone:       "+91 9876543210",
			Address:     "123 MG Road, Bangalore",
			ServiceDate: "2024-01-15",
			ServiceType: models.ServiceSump,
			Price:       2500,
			Notes:       "Regular customer, monthly service",
			CreatedAt:   "2024-01-15T10:00:00.000Z",
		},
		{
			ID:          "2",
			Name:        "Priya Sharma",
			Phone:       "+91 9876543211",
			Address:     "456 Brigade Road, Bangalore",
			ServiceDate: "2024-01-20",
			ServiceType: models.ServiceTank,
			Price:       3500,
			Notes:       "New installation cleaning",
			CreatedAt:   "2024-01-20T14:30:00.000Z",
		},
		{
			ID:          "3",
			Name:        "Suresh Reddy",
			Phone:       "+91 9876543212",
			Address:     "789 Koramangala, Bangalore",
			ServiceDate: "2024-01-25",
			ServiceType: models.ServiceBoth,
			Price:       5000,
			Notes:       "Complete cleaning service",
			CreatedAt:   "2024-01-25T09:15:00.000Z",
		},
		{
			ID:          "4",
			Name:        "Anita Patel",
			Phone:       "+91 9876543213",
			Address:     "321 Indiranagar, Bangalore",
			ServiceDate: "2024-01-10",
			ServiceType: models.ServiceSump,
			Price:       2500,
			CreatedAt:   "2024-01-10T16:45:00.000Z",
		},
		{
			ID:          "5",
			Name:        "Vikram Singh",
			Phone:       "+91 9876543214",
			Address:     "654 Whitefield, Bangalore",
			ServiceDate: "2024-01-05",
			ServiceType: models.ServiceTank,
			Price:       3000,
			Notes:       "Emergency service call",
			CreatedAt:   "2024-01-05T11:20:00.000Z",
		},
	}
}
