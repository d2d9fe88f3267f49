package config

import "time"

// Default returns the configuration of the original store.
func Default() *Config {
	weekday := TimeSlot{Open: "08:00", Close: "18:00"}

	return &Config{
		Environment: EnvProduction,
		Port:        "8080",
		LogLevel:    "info",
		Currency:    "Rs.",
		Store: StoreProfile{
			Name:    "Jayabima Hardware",
			Phone:   "037-1234567",
			Email:   "jayabimahardware@gmail.com",
			Address: "123 Main Street, Kurunegala, Sri Lanka",
			Hours: WeeklyHours{
				Monday:    weekday,
				Tuesday:   weekday,
				Wednesday: weekday,
				Thursday:  weekday,
				Friday:    weekday,
				Saturday:  weekday,
				Sunday:    TimeSlot{Open: "08:00", Close: "13:00"},
			},
		},
		Features: Features{
			EnableOrdering:   true,
			EnableDelivery:   true,
			EnableStockCheck: true,
		},
		Offers: []string{
			"Buy 5 bags of cement → FREE delivery.",
			"10% OFF on paints above Rs. 10,000.",
			"Special discounts on Bosch tools.",
		},
		Session: SessionConfig{
			TTL:           0,
			SweepInterval: 5 * time.Minute,
		},
	}
}
