package spend

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
)

const awsVendor = "AWS"

// AWSCollector reads daily unblended cost from Cost Explorer, grouped
// by service and region. Credits and refunds are excluded.
type AWSCollector struct {
	client *costexplorer.Client
}

func NewAWSCollector(cfg awssdk.Config) *AWSCollector {
	return &AWSCollector{client: costexplorer.NewFromConfig(cfg)}
}

func (c *AWSCollector) Vendor() string {
	return awsVendor
}

func (c *AWSCollector) GetSpend(ctx context.Context, days int) ([]domain.VendorSpend, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: types.GranularityDaily,
		Metrics:     []string{"UnblendedCost"},
		Filter: &types.Expression{
			Not: &types.Expression{
				Dimensions: &types.DimensionValues{
					Key:    types.DimensionRecordType,
					Values: []string{"Credit", "Refund"},
				},
			},
		},
		GroupBy: []types.GroupDefinition{
			{
				Type: types.GroupDefinitionTypeDimension,
				Key:  aws.String("SERVICE"),
			},
			{
				Type: types.GroupDefinitionTypeDimension,
				Key:  aws.String("REGION"),
			},
		},
	}

	result, err := c.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("get cost and usage: %w", err)
	}

	var spends []domain.VendorSpend
	for _, period := range result.ResultsByTime {
		periodStart, err := time.Parse("2006-01-02", aws.ToString(period.TimePeriod.Start))
		if err != nil {
			continue
		}
		periodEnd, err := time.Parse("2006-01-02", aws.ToString(period.TimePeriod.End))
		if err != nil {
			continue
		}

		for _, group := range period.Groups {
			if len(group.Keys) < 2 {
				continue
			}
			metric, ok := group.Metrics["UnblendedCost"]
			if !ok {
				continue
			}
			amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
			if err != nil {
				continue
			}

			spends = append(spends, domain.VendorSpend{
				Vendor:    awsVendor,
				Service:   group.Keys[0],
				Region:    group.Keys[1],
				Amount:    amount,
				Currency:  aws.ToString(metric.Unit),
				StartTime: periodStart,
				EndTime:   periodEnd,
			})
		}
	}
	return spends, nil
}
