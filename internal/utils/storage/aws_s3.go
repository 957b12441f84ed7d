package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"volunteerhub-backend/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

const maxUploadSize = 5 << 20

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

	ErrStorageNotConfigured = errors.New("object storage is not configured")
	ErrFileTooLarge         = errors.New("file exceeds the 5MB limit")
	ErrFileTypeNotAllowed   = errors.New("file type is not allowed")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, name string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		// UploadImage shrinks the image to fit maxDim x maxDim before uploading it.
		UploadImage(ctx context.Context, name string, file *multipart.FileHeader, folder string, maxDim int) (string, error)
		GetPublicLinkKey(objectKey string) string
	}

	putObjectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	}

	awsS3 struct {
		client putObjectAPI
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" || region == "" {
		return &awsS3{}
	}

	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return &awsS3{}
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (a *awsS3) UploadFile(ctx context.Context, name string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	data, mime, err := readUpload(file, allowed)
	if err != nil {
		return "", err
	}
	key := objectKey(folder, name, mime.Extension())
	return key, a.put(ctx, key, data, mime.String())
}

func (a *awsS3) UploadImage(ctx context.Context, name string, file *multipart.FileHeader, folder string, maxDim int) (string, error) {
	data, mime, err := readUpload(file, AllowImage)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	img = fitImage(img, maxDim)

	format, contentType, ext := imaging.JPEG, "image/jpeg", ".jpg"
	if mime.Is("image/png") {
		format, contentType, ext = imaging.PNG, "image/png", ".png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	key := objectKey(folder, name, ext)
	return key, a.put(ctx, key, buf.Bytes(), contentType)
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) put(ctx context.Context, key string, data []byte, contentType string) error {
	if a.client == nil {
		return ErrStorageNotConfigured
	}
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func fitImage(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}

func readUpload(file *multipart.FileHeader, allowed []string) ([]byte, *mimetype.MIME, error) {
	if file.Size > maxUploadSize {
		return nil, nil, ErrFileTooLarge
	}
	f, err := file.Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return nil, nil, err
	}
	if len(data) > maxUploadSize {
		return nil, nil, ErrFileTooLarge
	}

	mime := mimetype.Detect(data)
	if len(allowed) > 0 && !mimetype.EqualsAny(mime.String(), allowed...) {
		return nil, nil, ErrFileTypeNotAllowed
	}
	return data, mime, nil
}

func objectKey(folder, name, ext string) string {
	name = strings.ReplaceAll(name, "/", "-")
	return path.Join(folder, fmt.Sprintf("%s-%d%s", name, time.Now().Unix(), ext))
}
