package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/rs/zerolog"
)

// AWSImporter pulls EC2 instances, RDS databases and S3 buckets into
// the asset register. Assets already present (matched by resource_id)
// are skipped.
type AWSImporter struct {
	ec2Client *ec2.Client
	rdsClient *rds.Client
	s3Client  *s3.Client
	registers registers.Explorer
}

func NewAWSImporter(cfg awssdk.Config, registersExplorer registers.Explorer) *AWSImporter {
	return &AWSImporter{
		ec2Client: ec2.NewFromConfig(cfg),
		rdsClient: rds.NewFromConfig(cfg),
		s3Client:  s3.NewFromConfig(cfg),
		registers: registersExplorer,
	}
}

// Import collects all supported resource types and appends them to
// the asset register. Returns the number of imported assets.
func (i *AWSImporter) Import(ctx context.Context) (int, error) {
	logger := zerolog.Ctx(ctx)

	var assets []domain.Asset
	collectors := []struct {
		name    string
		collect func(context.Context) ([]domain.Asset, error)
	}{
		{"ec2", i.collectInstances},
		{"rds", i.collectDatabases},
		{"s3", i.collectBuckets},
	}
	for _, c := range collectors {
		collected, err := c.collect(ctx)
		if err != nil {
			return 0, fmt.Errorf("collect %s assets: %w", c.name, err)
		}
		logger.Debug().Str("service", c.name).Int("assets", len(collected)).Msg("collected cloud assets")
		assets = append(assets, collected...)
	}

	existing, err := i.registers.GetRecords(ctx, "assets", domain.Filters{
		Dimensions: map[string][]string{"platform": {string(domain.PlatformAWS)}},
	})
	if err != nil {
		return 0, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, record := range existing {
		known[record.Dimension("resource_id")] = struct{}{}
	}

	records := make([]domain.RegisterRecord, 0, len(assets))
	for _, asset := range assets {
		if _, ok := known[asset.ResourceID]; ok {
			continue
		}
		records = append(records, adapters.MapAssetToRecord(asset))
	}
	if len(records) == 0 {
		return 0, nil
	}

	if err := i.registers.AddRecords(ctx, "assets", records); err != nil {
		return 0, fmt.Errorf("import aws assets: %w", err)
	}
	return len(records), nil
}

func (i *AWSImporter) collectInstances(ctx context.Context) ([]domain.Asset, error) {
	resp, err := i.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{"running"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("describe EC2 instances: %w", err)
	}

	var assets []domain.Asset
	for _, reservation := range resp.Reservations {
		for _, instance := range reservation.Instances {
			instanceID := aws.ToString(instance.InstanceId)

			name := instanceID
			for _, tag := range instance.Tags {
				if aws.ToString(tag.Key) == "Name" {
					name = aws.ToString(tag.Value)
					break
				}
			}

			assets = append(assets, domain.Asset{
				ID:          instanceID,
				Name:        name,
				Category:    "server",
				Platform:    string(domain.PlatformAWS),
				Status:      domain.AssetStatusActive,
				Criticality: domain.SeverityMedium,
				Region:      aws.ToString(instance.Placement.AvailabilityZone),
				ResourceID:  instanceID,
				AcquiredAt:  aws.ToTime(instance.LaunchTime),
			})
		}
	}
	return assets, nil
}

func (i *AWSImporter) collectDatabases(ctx context.Context) ([]domain.Asset, error) {
	resp, err := i.rdsClient.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("describe RDS instances: %w", err)
	}

	var assets []domain.Asset
	for _, instance := range resp.DBInstances {
		assets = append(assets, domain.Asset{
			ID:          aws.ToString(instance.DBInstanceIdentifier),
			Name:        aws.ToString(instance.DBInstanceIdentifier),
			Category:    "database",
			Platform:    string(domain.PlatformAWS),
			Status:      domain.AssetStatusActive,
			Criticality: domain.SeverityHigh,
			Region:      aws.ToString(instance.AvailabilityZone),
			ResourceID:  aws.ToString(instance.DBInstanceArn),
			AcquiredAt:  aws.ToTime(instance.InstanceCreateTime),
		})
	}
	return assets, nil
}

func (i *AWSImporter) collectBuckets(ctx context.Context) ([]domain.Asset, error) {
	resp, err := i.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list S3 buckets: %w", err)
	}

	var assets []domain.Asset
	for _, bucket := range resp.Buckets {
		name := aws.ToString(bucket.Name)

		region := DefaultRegion
		locResp, err := i.s3Client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: bucket.Name})
		if err == nil && string(locResp.LocationConstraint) != "" {
			region = string(locResp.LocationConstraint)
		}

		created := time.Now().UTC()
		if bucket.CreationDate != nil {
			created = *bucket.CreationDate
		}

		assets = append(assets, domain.Asset{
			ID:          name,
			Name:        name,
			Category:    "storage",
			Platform:    string(domain.PlatformAWS),
			Status:      domain.AssetStatusActive,
			Criticality: domain.SeverityMedium,
			Region:      region,
			ResourceID:  fmt.Sprintf("arn:aws:s3:::%s", name),
			AcquiredAt:  created,
		})
	}
	return assets, nil
}
