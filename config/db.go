package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"chalet-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SeedDatabase provisions reference data on an empty database: the chalet
// rooms and the default price tables. Bookings, holds and blockages are
// never seeded.
func SeedDatabase() {
	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "1", Size: models.RoomSizeSmall, Beds: 2, Description: "Ground floor, garden side"},
			{RoomNumber: "2", Size: models.RoomSizeSmall, Beds: 2, Description: "Ground floor, road side"},
			{RoomNumber: "3", Size: models.RoomSizeSmall, Beds: 3, Description: "First floor, south"},
			{RoomNumber: "4", Size: models.RoomSizeSmall, Beds: 3, Description: "First floor, north"},
			{RoomNumber: "5", Size: models.RoomSizeLarge, Beds: 5, Description: "First floor family room"},
			{RoomNumber: "6", Size: models.RoomSizeLarge, Beds: 6, Description: "Attic dormitory"},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	// ---------------- Rate plans ----------------
	var rateCount int64
	DB.Model(&models.RatePlan{}).Count(&rateCount)
	if rateCount == 0 {
		plans := []models.RatePlan{
			{GuestTier: models.TierResident, RoomSize: models.RoomSizeSmall, BasePrice: 250, AdultSurcharge: 50, ChildSurcharge: 25},
			{GuestTier: models.TierResident, RoomSize: models.RoomSizeLarge, BasePrice: 400, AdultSurcharge: 50, ChildSurcharge: 25},
			{GuestTier: models.TierExternal, RoomSize: models.RoomSizeSmall, BasePrice: 500, AdultSurcharge: 100, ChildSurcharge: 50},
			{GuestTier: models.TierExternal, RoomSize: models.RoomSizeLarge, BasePrice: 800, AdultSurcharge: 100, ChildSurcharge: 50},
		}
		if err := DB.Create(&plans).Error; err != nil {
			log.Printf("warning: failed to seed rate plans: %v", err)
		} else {
			log.Println("Rate plans seeded")
		}
	}

	var bulkCount int64
	DB.Model(&models.BulkRate{}).Count(&bulkCount)
	if bulkCount == 0 {
		bulk := models.BulkRate{BasePrice: 2500, AdultSurcharge: 40, ChildSurcharge: 20}
		if err := DB.Create(&bulk).Error; err != nil {
			log.Printf("warning: failed to seed bulk rate: %v", err)
		} else {
			log.Println("Bulk rate seeded")
		}
	}

	// ---------------- Chalet profile ----------------
	var settingCount int64
	DB.Model(&models.ChaletSetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.ChaletSetting{Name: "Chalet"}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed chalet settings: %v", err)
		}
	}
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "chalet_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.ChaletSetting{},
		&models.Room{},
		&models.RatePlan{},
		&models.BulkRate{},
		&models.Booking{},
		&models.BookingRoom{},
		&models.Guest{},
		&models.ProposedBooking{},
		&models.Blockage{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
