package config

import (
	"context"
	"fmt"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/rs/zerolog"

	"github.com/promptkit/bedrockd/bedrock"
)

// LoadAWSConfig loads AWS connection settings from server config.
// It returns the region and profile to use for creating Bedrock clients.
func LoadAWSConfig(cfg *ServerConfig) (region, profile string) {
	if cfg != nil {
		region = cfg.AWS.Region
		profile = cfg.AWS.Profile
	}

	// Apply environment variable overrides
	if envRegion := getAWSRegionFromEnv(); envRegion != "" {
		region = envRegion
	}
	if envProfile := getAWSProfileFromEnv(); envProfile != "" {
		profile = envProfile
	}

	// Set defaults if still empty
	if region == "" {
		region = "us-east-1"
	}

	return region, profile
}

// RetryPolicy converts the retry section into a Bedrock client policy.
// Unset values take the documented defaults.
func RetryPolicy(cfg *ServerConfig) bedrock.RetryPolicy {
	policy := bedrock.DefaultRetryPolicy()
	if cfg == nil {
		return policy
	}
	if cfg.Retry.MaxRetries > 0 {
		policy.MaxRetries = uint64(cfg.Retry.MaxRetries)
	}
	if cfg.Retry.InitialInterval > 0 {
		policy.InitialInterval = time.Duration(cfg.Retry.InitialInterval) * time.Second
	}
	if cfg.Retry.MaxInterval > 0 {
		policy.MaxInterval = time.Duration(cfg.Retry.MaxInterval) * time.Second
	}
	if cfg.Retry.Multiplier > 0 {
		policy.Multiplier = cfg.Retry.Multiplier
	}
	return policy
}

// NewBedrockClients creates the Bedrock control-plane and runtime clients
// from the configuration. It fails fast when no AWS credentials can be
// resolved, so a misconfigured server does not come up half-working.
func NewBedrockClients(ctx context.Context, cfg *ServerConfig, logger zerolog.Logger) (*bedrock.AgentClient, *bedrock.RuntimeClient, error) {
	region, profile := LoadAWSConfig(cfg)

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		return nil, nil, fmt.Errorf("no AWS credentials available: %w", err)
	}

	retry := RetryPolicy(cfg)
	agent := bedrock.NewAgentClient(bedrockagent.NewFromConfig(awsCfg), retry, logger)
	runtime := bedrock.NewRuntimeClient(bedrockruntime.NewFromConfig(awsCfg), retry, logger)

	logger.Info().Str("region", region).Bool("profile_set", profile != "").Msg("initialized Bedrock clients")
	return agent, runtime, nil
}

// getAWSRegionFromEnv gets the AWS region from environment variable.
func getAWSRegionFromEnv() string {
	return os.Getenv("AWS_REGION")
}

// getAWSProfileFromEnv gets the AWS shared config profile from environment variable.
func getAWSProfileFromEnv() string {
	return os.Getenv("AWS_PROFILE")
}
