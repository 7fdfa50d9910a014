package contracts

import (
	"context"
	"time"
)

type Storage interface {
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}
