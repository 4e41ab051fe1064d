package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client    *s3.Client
	s3Presigner *s3.PresignClient
)

func InitS3() {
	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Fatalf("Unable to load AWS config for S3: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	s3Presigner = s3.NewPresignClient(s3Client)
}

// PresignMealUpload issues a one-hour presigned PUT for a new meal photo and
// returns the URL with the object key the client must report back when
// creating the draft.
func PresignMealUpload(userID string) (uploadURL, key string, err error) {
	key = fmt.Sprintf("meal-photos/%s/%d.jpg", userID, time.Now().UnixNano())

	req, err := s3Presigner.PresignPutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		ContentType: aws.String("image/jpeg"),
	}, s3.WithPresignExpires(time.Hour))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return req.URL, key, nil
}

// MealPhotoURL returns the public URL the vision model fetches the photo
// from, via CloudFront when configured.
func MealPhotoURL(key string) string {
	if cfURL := os.Getenv("CLOUDFRONT_URL"); cfURL != "" {
		return fmt.Sprintf("%s/%s", cfURL, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", os.Getenv("S3_BUCKET"), key)
}
