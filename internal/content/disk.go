package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/google/uuid"
)

// DefaultRoot is used when no storage directory is configured.
const DefaultRoot = "/tmp/files_manager"

// DiskStore persists raw bytes as flat files under a root directory.
// Originals are stored at <root>/<ref>, derivatives at <root>/<ref>_<width>.
// The deterministic derivative naming makes thumbnail regeneration
// idempotent: a retry overwrites the same path with the same bytes.
type DiskStore struct {
	root string
}

type DiskStoreDependencies struct {
	Root string
}

func NewDiskStore(deps DiskStoreDependencies) (*DiskStore, error) {
	root := deps.Root
	if root == "" {
		root = DefaultRoot
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content root %s: %w", root, err)
	}

	return &DiskStore{root: root}, nil
}

func (s *DiskStore) path(ref string, width int) string {
	name := ref
	if width > 0 {
		name = fmt.Sprintf("%s_%d", ref, width)
	}
	return filepath.Join(s.root, name)
}

func (s *DiskStore) Put(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := uuid.NewString()

	if err := os.WriteFile(s.path(ref, 0), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write content %s: %w", ref, err)
	}

	return ref, nil
}

func (s *DiskStore) Get(ctx context.Context, ref string, width int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(ref, width))
	if os.IsNotExist(err) {
		return nil, domain.ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read content %s: %w", ref, err)
	}

	return data, nil
}

func (s *DiskStore) PutDerivative(ctx context.Context, ref string, width int, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.WriteFile(s.path(ref, width), data, 0o644); err != nil {
		return fmt.Errorf("failed to write derivative %s_%d: %w", ref, width, err)
	}

	return nil
}

// Delete removes an original blob. Used to roll back a content write when
// the subsequent metadata insert fails. Missing blobs are not an error.
func (s *DiskStore) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.path(ref, 0)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete content %s: %w", ref, err)
	}

	return nil
}
