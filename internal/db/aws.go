package db

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// rdsTokenLifetime is fixed by AWS.
const rdsTokenLifetime = 15 * time.Minute

// AWSIAMTokenProvider builds RDS IAM auth tokens from the default AWS
// credential chain.
type AWSIAMTokenProvider struct {
	endpoint string
	region   string
	username string
}

// NewAWSIAMTokenProvider returns a provider for endpoint (host:port).
func NewAWSIAMTokenProvider(endpoint, region, username string) (*AWSIAMTokenProvider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: AWS IAM auth requires an endpoint (host:port)", csv2table.ErrValidation)
	}
	if region == "" {
		return nil, fmt.Errorf("%w: AWS IAM auth requires a region (AWS Region=... or $AWS_REGION)", csv2table.ErrValidation)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: AWS IAM auth requires a database user name", csv2table.ErrValidation)
	}

	return &AWSIAMTokenProvider{endpoint: endpoint, region: region, username: username}, nil
}

// GetToken implements TokenProvider.
func (p *AWSIAMTokenProvider) GetToken(ctx context.Context) (string, time.Time, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(p.region))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	token, err := auth.BuildAuthToken(ctx, p.endpoint, p.region, p.username, cfg.Credentials)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build RDS auth token: %w", err)
	}
	return token, time.Now().Add(rdsTokenLifetime), nil
}

func (p *AWSIAMTokenProvider) String() string {
	return fmt.Sprintf("AWSIAMTokenProvider(endpoint=%s, region=%s, user=%s)", p.endpoint, p.region, p.username)
}

func newAWSConnector(cfg *csv2table.ConnectionConfig, logger csv2table.Logger) (csv2table.Connector, error) {
	port := cfg.Port
	if port == 0 {
		port = defaultPorts[cfg.Dialect]
	}
	endpoint := net.JoinHostPort(cfg.Host, strconv.Itoa(port))

	provider, err := NewAWSIAMTokenProvider(endpoint, cfg.AWSRegion, cfg.Username)
	if err != nil {
		return nil, err
	}
	return NewTokenConnector(cfg, provider, "AWS IAM", logger), nil
}
