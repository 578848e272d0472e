package models

import (
	"time"
)

// Role tags a user record instead of subclassing it. Role-specific data
// lives in the DoctorProfile/PatientProfile extension tables.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
	RoleStaff   Role = "STAFF"
)

// User is the single identity record for everyone in the system.
type User struct {
	ID        int64     `gorm:"primaryKey;column:id" json:"id"`
	Role      Role      `gorm:"column:role;size:20;not null;index" json:"role"`
	FirstName string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName  string    `gorm:"column:last_name;not null;index" json:"last_name"`
	Email     string    `gorm:"column:email;size:255;unique;index" json:"email"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// DoctorProfile extends a User with role DOCTOR.
type DoctorProfile struct {
	UserID        int64  `gorm:"primaryKey;column:user_id" json:"user_id"`
	Specialty     string `gorm:"column:specialty;size:100" json:"specialty"`
	LicenseNumber string `gorm:"column:license_number;size:50" json:"license_number"`
	Title         string `gorm:"column:title;size:50" json:"title"`
	User          User   `gorm:"foreignKey:UserID;references:ID" json:"user"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// PatientProfile extends a User with role PATIENT.
type PatientProfile struct {
	UserID      int64  `gorm:"primaryKey;column:user_id" json:"user_id"`
	DateOfBirth string `gorm:"column:date_of_birth" json:"date_of_birth"`
	Sex         string `gorm:"column:sex;check:sex IN ('Male', 'Female', 'Other')" json:"sex"`
	Address     string `gorm:"column:address" json:"address"`
	BloodGroup  string `gorm:"column:blood_group;size:5" json:"blood_group"`
	User        User   `gorm:"foreignKey:UserID;references:ID" json:"user"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}
