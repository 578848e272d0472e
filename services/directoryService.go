package services

import (
	"SanteSenegal/models"
	"SanteSenegal/utils"
	"context"
)

// DirectoryService exposes the people and places registry.
type DirectoryService struct {
	directory DirectoryAdmin
}

func NewDirectoryService(directory DirectoryAdmin) *DirectoryService {
	return &DirectoryService{directory: directory}
}

func (s *DirectoryService) GetDoctor(ctx context.Context, id int64) (*models.DoctorProfile, error) {
	return s.directory.GetDoctor(ctx, id)
}

func (s *DirectoryService) GetPatient(ctx context.Context, id int64) (*models.PatientProfile, error) {
	return s.directory.GetPatient(ctx, id)
}

func (s *DirectoryService) GetHospital(ctx context.Context, id int64) (*models.Hospital, error) {
	return s.directory.GetHospital(ctx, id)
}

func (s *DirectoryService) CreateDoctor(ctx context.Context, user *models.User, profile *models.DoctorProfile) error {
	if err := utils.ValidateUser(*user); err != nil {
		return err
	}
	return s.directory.CreateDoctor(ctx, user, profile)
}

func (s *DirectoryService) CreatePatient(ctx context.Context, user *models.User, profile *models.PatientProfile) error {
	if err := utils.ValidateUser(*user); err != nil {
		return err
	}
	return s.directory.CreatePatient(ctx, user, profile)
}

func (s *DirectoryService) ListDoctors(ctx context.Context) ([]models.DoctorProfile, error) {
	return s.directory.ListDoctors(ctx)
}

func (s *DirectoryService) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	return s.directory.ListHospitals(ctx)
}

func (s *DirectoryService) ListServices(ctx context.Context, hospitalID int64) ([]models.Service, error) {
	return s.directory.ListServices(ctx, hospitalID)
}
