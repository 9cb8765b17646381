package bedrock

import (
	"context"
	"errors"
	"time"

	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v4"
)

// Default throttle retry settings. Bedrock sheds load with throttling
// errors under burst traffic; a short exponential backoff absorbs those
// without hiding real failures.
const (
	DefaultRetryInitialInterval = 1 * time.Second
	DefaultRetryMultiplier      = 2.0
	DefaultRetryMaxInterval     = 30 * time.Second
	DefaultRetryMaxRetries      = 3
)

// RetryPolicy bounds throttle retries for the AWS clients. Only throttling
// errors are retried; everything else fails on the first attempt.
type RetryPolicy struct {
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
	MaxRetries      uint64
}

// DefaultRetryPolicy returns the documented default policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialInterval: DefaultRetryInitialInterval,
		Multiplier:      DefaultRetryMultiplier,
		MaxInterval:     DefaultRetryMaxInterval,
		MaxRetries:      DefaultRetryMaxRetries,
	}
}

// newBackOff builds the backoff schedule for one API call.
func (p RetryPolicy) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.Multiplier = p.Multiplier
	eb.MaxInterval = p.MaxInterval
	eb.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(eb, p.MaxRetries), ctx)
}

// retryThrottled runs op, retrying per the policy while op fails with a
// throttling error. Non-throttling errors abort immediately and come back
// unchanged.
func retryThrottled(ctx context.Context, p RetryPolicy, op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !isThrottle(err) {
			return backoff.Permanent(err)
		}
		return err
	}, p.newBackOff(ctx))
}

// isThrottle reports whether err is an AWS throttling error.
func isThrottle(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "ThrottlingException", "TooManyRequestsException":
		return true
	}
	return false
}
