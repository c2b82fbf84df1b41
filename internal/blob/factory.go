package blob

import (
	"context"
	"fmt"
)

// Open selects the archive backend. An empty driver means filesystem; S3
// credentials and endpoint come from the environment (see s3.go).
func Open(ctx context.Context, driver, fsRoot string) (Store, error) {
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		if fsRoot == "" {
			fsRoot = "./archives"
		}
		return NewFilesystem(fsRoot)
	case DriverS3:
		return OpenS3FromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown archive driver %q", driver)
	}
}
