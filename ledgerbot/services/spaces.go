package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disgoorg/snowflake/v2"
)

// SpacesConfig is the [spaces] section. Leaving key or bucket empty
// disables uploads.
type SpacesConfig struct {
	Key    string `toml:"key"`
	Secret string `toml:"secret"`
	Region string `toml:"region"`
	Bucket string `toml:"bucket"`
	Root   string `toml:"root"`
}

func (c SpacesConfig) Enabled() bool {
	return c.Key != "" && c.Secret != "" && c.Bucket != "" && c.Region != ""
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SpacesService publishes rendered images to DigitalOcean Spaces.
type SpacesService struct {
	client objectPutter
	bucket string
	region string
	root   string
	now    func() time.Time
}

var ErrSpacesDisabled = errors.New("spaces storage is not configured")

func NewSpacesService(ctx context.Context, cfg SpacesConfig) (*SpacesService, error) {
	if !cfg.Enabled() {
		return nil, ErrSpacesDisabled
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.Region))
	})

	return newSpacesService(client, cfg), nil
}

func newSpacesService(client objectPutter, cfg SpacesConfig) *SpacesService {
	return &SpacesService{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		root:   strings.Trim(cfg.Root, "/"),
		now:    time.Now,
	}
}

// LeaderboardKey is where a guild's leaderboard render is stored.
func (s *SpacesService) LeaderboardKey(guildID snowflake.ID) string {
	key := fmt.Sprintf("leaderboards/%s/%d.png", guildID, s.now().Unix())
	if s.root != "" {
		key = s.root + "/" + key
	}
	return key
}

func (s *SpacesService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

// UploadLeaderboardImage stores png publicly and returns its URL.
func (s *SpacesService) UploadLeaderboardImage(ctx context.Context, guildID snowflake.ID, png []byte) (string, error) {
	key := s.LeaderboardKey(guildID)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(png),
		ContentType:  aws.String("image/png"),
		CacheControl: aws.String("public, max-age=300"),
		ACL:          types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload leaderboard image: %w", err)
	}
	return s.PublicURL(key), nil
}
