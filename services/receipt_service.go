package services

import (
	"context"
	"fmt"
	"io"

	apperrors "pousada/errors"
	"pousada/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const receiptFolder = "receipts"

// ReceiptUploader stores a receipt file and returns its public URL
type ReceiptUploader interface {
	Upload(ctx context.Context, file io.Reader, name string) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld, folder: receiptFolder}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, name string) (string, error) {
	if u.cld == nil {
		return "", fmt.Errorf("cloudinary is not configured")
	}
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: name,
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload failed: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// ReceiptService uploads a payment receipt and records its URL
type ReceiptService struct {
	payments *PaymentService
	uploader ReceiptUploader
	logger   logger.Logger
}

func NewReceiptService(payments *PaymentService, up ReceiptUploader, log logger.Logger) *ReceiptService {
	if log == nil {
		log = logger.Nop{}
	}
	return &ReceiptService{payments: payments, uploader: up, logger: log}
}

func (s *ReceiptService) Attach(ctx context.Context, paymentID uint, file io.Reader) (string, error) {
	if _, err := s.payments.Get(ctx, paymentID); err != nil {
		return "", err
	}
	if s.uploader == nil {
		return "", apperrors.Internal("receipt storage is not configured", nil)
	}
	url, err := s.uploader.Upload(ctx, file, fmt.Sprintf("payment-%d", paymentID))
	if err != nil {
		s.logger.Error("receipt upload failed for payment %d: %v", paymentID, err)
		return "", apperrors.Internal("failed to upload receipt", err)
	}
	if _, err := s.payments.Update(ctx, paymentID, PaymentPatch{ReceiptURL: &url}); err != nil {
		return "", err
	}
	return url, nil
}
