// Package seed holds the embedded demo catalog. It backs the in-memory
// repositories when no database is configured and feeds Apply for the
// seed binary.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"iotshop/internal/domain"
	categoryrepo "iotshop/internal/repository/category"
	productrepo "iotshop/internal/repository/product"
	userrepo "iotshop/internal/repository/user"
)

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(fmt.Sprintf("seed: bad timestamp %q: %v", value, err))
	}
	return t
}

// Products returns the demo catalog.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Key:         "arduino-uno-r3",
			Name:        "Arduino Uno R3",
			Description: "The Arduino Uno R3 is a microcontroller board based on the ATmega328P. It has 14 digital input/output pins, 6 analog inputs, a 16 MHz ceramic resonator, a USB connection, a power jack, an ICSP header, and a reset button.",
			PriceCents:  2299,
			Currency:    "USD",
			Image:       "https://images.pexels.com/photos/6849944/pexels-photo-6849944.jpeg?auto=compress&cs=tinysrgb&w=600",
			Category:    "microcontrollers",
			Stock:       50,
			Featured:    true,
			Specifications: map[string]string{
				"Microcontroller":        "ATmega328P",
				"Operating Voltage":      "5V",
				"Input Voltage":          "7-12V",
				"Digital I/O Pins":       "14",
				"Analog Input Pins":      "6",
				"DC Current per I/O Pin": "20 mA",
				"Flash Memory":           "32 KB",
				"SRAM":                   "2 KB",
				"EEPROM":                 "1 KB",
				"Clock Speed":            "16 MHz",
			},
			CompatibleWith: []string{"shields", "sensors", "actuators"},
			Rating:         4.8,
			Reviews: []domain.Review{
				{
					ID:        "101",
					UserID:    "user1",
					UserName:  "John Doe",
					Rating:    5,
					Comment:   "Great product for beginners!",
					CreatedAt: ts("2023-01-15T10:30:00Z"),
				},
			},
			CreatedAt: ts("2022-06-10T08:00:00Z"),
			UpdatedAt: ts("2023-05-20T14:25:00Z"),
		},
		{
			ID:          "2",
			Key:         "raspberry-pi-4-model-b-4gb",
			Name:        "Raspberry Pi 4 Model B - 4GB RAM",
			Description: "The Raspberry Pi 4 Model B is the latest product in the Raspberry Pi range, offering ground-breaking increases in processor speed, multimedia performance, memory, and connectivity compared to the Raspberry Pi 3 Model B+.",
			PriceCents:  4599,
			Currency:    "USD",
			Image:       "https://images.pexels.com/photos/11997624/pexels-photo-11997624.jpeg?auto=compress&cs=tinysrgb&w=600",
			Category:    "microcomputers",
			Stock:       25,
			Featured:    true,
			Specifications: map[string]string{
				"Processor":    "Broadcom BCM2711, quad-core Cortex-A72 (ARM v8) 64-bit SoC @ 1.5 GHz",
				"Memory":       "4GB LPDDR4",
				"Connectivity": "Gigabit Ethernet, 2.4 GHz and 5.0 GHz IEEE 802.11b/g/n/ac wireless, Bluetooth 5.0, BLE",
				"USB":          "2 x USB 3.0 ports, 2 x USB 2.0 ports",
				"GPIO":         "40-pin GPIO header",
				"Video":        "2 x micro-HDMI ports supporting up to 4Kp60 video resolution",
				"Audio":        "4-pole stereo audio and composite video port",
				"Multimedia":   "H.265 (4Kp60 decode), H.264 (1080p60 decode, 1080p30 encode)",
				"Storage":      "MicroSD card slot for loading operating system and data storage",
				"Power":        "5V DC via USB-C connector (minimum 3A)",
			},
			CompatibleWith: []string{"camera modules", "displays", "HATs"},
			Rating:         4.9,
			Reviews: []domain.Review{
				{
					ID:        "102",
					UserID:    "user2",
					UserName:  "Jane Smith",
					Rating:    5,
					Comment:   "Amazing performance for such a small device!",
					CreatedAt: ts("2023-02-22T14:45:00Z"),
				},
			},
			CreatedAt: ts("2022-07-15T09:30:00Z"),
			UpdatedAt: ts("2023-06-01T11:15:00Z"),
		},
		{
			ID:          "3",
			Key:         "dht22-temperature-humidity-sensor",
			Name:        "DHT22 Temperature and Humidity Sensor",
			Description: "The DHT22 is a basic, low-cost digital temperature and humidity sensor. It uses a capacitive humidity sensor and a thermistor to measure the surrounding air, and spits out a digital signal on the data pin.",
			PriceCents:  999,
			Currency:    "USD",
			Image:       "https://images.pexels.com/photos/3657154/pexels-photo-3657154.jpeg?auto=compress&cs=tinysrgb&w=600",
			Category:    "sensors",
			Subcategory: "environmental",
			Stock:       100,
			Specifications: map[string]string{
				"Power supply":         "3.3-6V DC",
				"Output signal":        "Digital signal via single-bus",
				"Sensing element":      "Polymer capacitor",
				"Temperature range":    "-40 to 80°C",
				"Humidity range":       "0-100% RH",
				"Temperature accuracy": "±0.5°C",
				"Humidity accuracy":    "±2% RH",
				"Resolution":           "Temperature 0.1°C, Humidity 0.1% RH",
			},
			CompatibleWith: []string{"Arduino", "Raspberry Pi", "ESP8266", "ESP32"},
			Rating:         4.5,
			CreatedAt:      ts("2022-08-20T10:45:00Z"),
			UpdatedAt:      ts("2023-04-12T16:20:00Z"),
		},
		{
			ID:          "4",
			Key:         "sg90-micro-servo-motor",
			Name:        "SG90 Micro Servo Motor",
			Description: "The SG90 is a tiny and lightweight servo motor with high output power. It can rotate approximately 180 degrees (90 in each direction) and works just like standard servos but smaller.",
			PriceCents:  399,
			Currency:    "USD",
			Image:       "https://images.pexels.com/photos/3601089/pexels-photo-3601089.jpeg?auto=compress&cs=tinysrgb&w=600",
			Category:    "actuators",
			Subcategory: "motors",
			Stock:       75,
			Specifications: map[string]string{
				"Weight":                "9g",
				"Dimension":             "22.2 x 11.8 x 31 mm",
				"Stall torque":          "1.8 kgf·cm (4.8V)",
				"Operating speed":       "0.1 s/60° (4.8V)",
				"Operating voltage":     "4.8V (~5V)",
				"Temperature range":     "0 to 55°C",
				"Dead band width":       "7 μs",
				"Connector wire length": "24.5 cm",
			},
			CompatibleWith: []string{"Arduino", "Raspberry Pi", "microcontrollers"},
			Rating:         4.2,
			CreatedAt:      ts("2022-09-05T13:20:00Z"),
			UpdatedAt:      ts("2023-03-30T09:10:00Z"),
		},
		{
			ID:          "5",
			Key:         "esp32-development-board",
			Name:        "ESP32 Development Board",
			Description: "The ESP32 Development Board is a versatile microcontroller that offers both WiFi and Bluetooth connectivity, making it perfect for IoT projects.",
			PriceCents:  1199,
			Currency:    "USD",
			Image:       "https://images.pexels.com/photos/8068381/pexels-photo-8068381.jpeg?auto=compress&cs=tinysrgb&w=600",
			Category:    "microcontrollers",
			Stock:       40,
			Featured:    true,
			Specifications: map[string]string{
				"CPU":             "Tensilica Xtensa LX6 dual-core processor (32-bit)",
				"Clock Frequency": "Up to 240MHz",
				"Wi-Fi":           "IEEE 802.11 b/g/n",
				"Bluetooth":       "v4.2 BR/EDR and BLE",
				"GPIO":            "36 pins",
				"ADC":             "18 channels",
				"DAC":             "2 channels",
				"Flash Memory":    "4MB",
				"SRAM":            "520KB",
			},
			CompatibleWith: []string{"sensors", "displays", "actuators"},
			Rating:         4.7,
			CreatedAt:      ts("2022-10-12T11:30:00Z"),
			UpdatedAt:      ts("2023-06-18T15:45:00Z"),
		},
		{
			ID:          "6",
			Key:         "oled-display-128x64-i2c",
			Name:        "OLED Display 128x64 I2C",
			Description: "This is a 0.96\" OLED monochrome display with 128x64 pixels. It communicates via I2C protocol and is perfect for displaying text, small icons, and graphics in IoT projects.",
			PriceCents:  799,
			Currency:    "USD",
			Image:       "https://images.pexels.com/photos/7621150/pexels-photo-7621150.jpeg?auto=compress&cs=tinysrgb&w=600",
			Category:    "displays",
			Stock:       30,
			Specifications: map[string]string{
				"Display Size":      "0.96 inch",
				"Resolution":        "128x64 pixels",
				"Controller":        "SSD1306",
				"Color":             "Blue and yellow/white",
				"Interface":         "I2C",
				"Operating Voltage": "3.3-5V DC",
				"Dimensions":        "27.8 x 27.3 mm",
			},
			CompatibleWith: []string{"Arduino", "Raspberry Pi", "ESP32", "ESP8266"},
			Rating:         4.6,
			CreatedAt:      ts("2022-11-08T16:40:00Z"),
			UpdatedAt:      ts("2023-05-27T12:20:00Z"),
		},
	}
}

// Categories returns the demo category list.
func Categories() []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Microcontrollers", Slug: "microcontrollers", Image: "https://images.pexels.com/photos/6849944/pexels-photo-6849944.jpeg?auto=compress&cs=tinysrgb&w=600", Description: "Control your projects with these powerful microcontrollers"},
		{ID: "2", Name: "Microcomputers", Slug: "microcomputers", Image: "https://images.pexels.com/photos/11997624/pexels-photo-11997624.jpeg?auto=compress&cs=tinysrgb&w=600", Description: "Full computing power in tiny packages"},
		{ID: "3", Name: "Sensors", Slug: "sensors", Image: "https://images.pexels.com/photos/3657154/pexels-photo-3657154.jpeg?auto=compress&cs=tinysrgb&w=600", Description: "Detect changes in environmental conditions"},
		{ID: "4", Name: "Actuators", Slug: "actuators", Image: "https://images.pexels.com/photos/3601089/pexels-photo-3601089.jpeg?auto=compress&cs=tinysrgb&w=600", Description: "Control physical movements in your projects"},
		{ID: "5", Name: "Displays", Slug: "displays", Image: "https://images.pexels.com/photos/7621150/pexels-photo-7621150.jpeg?auto=compress&cs=tinysrgb&w=600", Description: "Visualize data with these display options"},
		{ID: "6", Name: "Power Supplies", Slug: "power-supplies", Image: "https://images.pexels.com/photos/1619506/pexels-photo-1619506.jpeg?auto=compress&cs=tinysrgb&w=600", Description: "Power your projects with reliable power supplies"},
	}
}

// Users returns the demo accounts. Both log in with "password".
func Users() []domain.User {
	return []domain.User{
		{ID: "user1", Name: "Demo User", Email: "user@example.com", PasswordHash: mustHash("password")},
		{ID: "admin1", Name: "Admin User", Email: "admin@example.com", PasswordHash: mustHash("password"), IsAdmin: true},
	}
}

func mustHash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("seed: hash password: %v", err))
	}
	return string(h)
}

// Apply upserts the demo catalog and accounts. It is idempotent: products
// and categories conflict on their natural keys, and existing demo users
// are left alone.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	categories := categoryrepo.NewPostgres(pool, logger)
	for _, c := range Categories() {
		c.ID = "" // let the database assign uuids
		if _, err := categories.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
	}

	products := productrepo.NewPostgres(pool, logger)
	for _, p := range Products() {
		p.ID = ""
		if _, err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Key, err)
		}
	}

	users := userrepo.NewPostgres(pool, logger)
	for _, u := range Users() {
		u.ID = ""
		if _, err := users.Create(ctx, u); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				continue
			}
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
	}

	logger.Printf("seed: applied %d categories, %d products, %d users", len(Categories()), len(Products()), len(Users()))
	return nil
}
