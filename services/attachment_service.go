package services

import (
	"fmt"
	"mime/multipart"

	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/scope"
	"github.com/garagehub/garagehub-api/utils"
)

// ownerModelFor maps an allow-listed owner type to its model for the
// same-tenant referential check. The type string is validated against this
// list; anything else is rejected at the boundary.
func ownerModelFor(ownerType string) (interface{}, bool) {
	switch ownerType {
	case models.AttachJobCard:
		return &models.JobCard{}, true
	case models.AttachVehicle:
		return &models.Vehicle{}, true
	case models.AttachCustomer:
		return &models.Customer{}, true
	case models.AttachInvoice:
		return &models.Invoice{}, true
	}
	return nil, false
}

// StoreAttachment validates and uploads a file, then records the attachment
// against its owning record. The owner must exist in the active tenant.
func StoreAttachment(s *scope.TenantDB, ownerType string, ownerID uint, fileHeader *multipart.FileHeader) (*models.Attachment, error) {
	ownerModel, ok := ownerModelFor(ownerType)
	if !ok {
		return nil, &utils.FileUploadError{
			Code:    "INVALID_OWNER_TYPE",
			Message: fmt.Sprintf("Attachments cannot be linked to %q records", ownerType),
		}
	}

	if err := utils.ValidateAttachmentFile(fileHeader); err != nil {
		return nil, err
	}

	if err := s.CheckRef(ownerModel, ownerID); err != nil {
		return nil, err
	}

	s3Key, err := GetS3Service().UploadFile(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	attachment := models.Attachment{
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		FileName:    fileHeader.Filename,
		S3Key:       s3Key,
		ContentType: utils.ContentTypeForFile(fileHeader.Filename),
		Size:        fileHeader.Size,
	}
	if err := s.CreateInTenant(&attachment); err != nil {
		return nil, err
	}

	return &attachment, nil
}

// GetAttachment loads an attachment and computes its presigned URL
func GetAttachment(s *scope.TenantDB, id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := s.FindInTenant(&attachment, id); err != nil {
		return nil, err
	}

	url, err := GetS3Service().GetPresignedURL(attachment.S3Key)
	if err != nil {
		return nil, fmt.Errorf("failed to generate attachment URL: %w", err)
	}
	attachment.URL = url

	return &attachment, nil
}

// DeleteAttachment removes the attachment row and its stored file
func DeleteAttachment(s *scope.TenantDB, id uint) error {
	var attachment models.Attachment
	if err := s.FindInTenant(&attachment, id); err != nil {
		return err
	}

	if err := s.DeleteInTenant(&models.Attachment{}, attachment.ID); err != nil {
		return err
	}

	if err := GetS3Service().DeleteFile(attachment.S3Key); err != nil {
		return fmt.Errorf("failed to delete attachment file: %w", err)
	}

	return nil
}
