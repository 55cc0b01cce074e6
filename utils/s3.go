package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client *s3.Client
	s3Bucket string
)

// InitS3 wires the meal-photo archive. Archiving is optional: without
// S3_BUCKET the client stays nil and S3Enabled reports false.
func InitS3() {
	s3Bucket = os.Getenv("S3_BUCKET")
	if s3Bucket == "" {
		return
	}

	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Printf("Unable to load AWS config for S3, photo archive disabled: %v", err)
		s3Bucket = ""
		return
	}
	s3Client = s3.NewFromConfig(cfg)
}

func S3Enabled() bool {
	return s3Client != nil && s3Bucket != ""
}

// UploadMealPhoto archives one captured photo and returns its object key.
func UploadMealPhoto(data []byte, contentType string) (string, error) {
	if !S3Enabled() {
		return "", fmt.Errorf("photo archive not configured")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	ext := ".jpg"
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		ext = exts[0]
	}

	key := fmt.Sprintf("meal-photos/%d%s", time.Now().UnixNano(), ext)

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}
	return key, nil
}
