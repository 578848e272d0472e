package models

import (
	"time"

	"gorm.io/gorm"
)

type HospitalStatus string

const (
	HospitalActive      HospitalStatus = "ACTIVE"
	HospitalInactive    HospitalStatus = "INACTIVE"
	HospitalMaintenance HospitalStatus = "MAINTENANCE"
)

type ServiceStatus string

const (
	ServiceActive    ServiceStatus = "ACTIVE"
	ServiceInactive  ServiceStatus = "INACTIVE"
	ServiceSuspended ServiceStatus = "SUSPENDED"
)

// Hospital is an organizational scope for availability and slots.
type Hospital struct {
	ID        int64          `gorm:"primaryKey;column:id" json:"id"`
	Name      string         `gorm:"column:name;not null;unique" json:"name"`
	Address   string         `gorm:"column:address" json:"address"`
	Phone     string         `gorm:"column:phone" json:"phone"`
	Status    HospitalStatus `gorm:"column:status;size:20;not null" json:"status"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

// Service is a hospital department (cardiology, pediatrics, ...).
type Service struct {
	ID         int64         `gorm:"primaryKey;column:id" json:"id"`
	HospitalID int64         `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	Name       string        `gorm:"column:name;not null" json:"name"`
	Status     ServiceStatus `gorm:"column:status;size:20;not null" json:"status"`
	CreatedAt  time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Service) TableName() string {
	return "services"
}

// SeedDirectory inserts a default hospital and its departments when the
// store is empty. Invoked once at startup, never as ambient state.
func SeedDirectory(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Hospital{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		hospital := Hospital{
			Name:    "Hopital Principal de Dakar",
			Address: "1 Avenue Nelson Mandela, Dakar",
			Status:  HospitalActive,
		}
		if err := tx.Create(&hospital).Error; err != nil {
			return err
		}

		services := []Service{
			{HospitalID: hospital.ID, Name: "Medecine Generale", Status: ServiceActive},
			{HospitalID: hospital.ID, Name: "Cardiologie", Status: ServiceActive},
			{HospitalID: hospital.ID, Name: "Pediatrie", Status: ServiceActive},
			{HospitalID: hospital.ID, Name: "Urgences", Status: ServiceActive},
		}
		for _, service := range services {
			if err := tx.Create(&service).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
