package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
)

type FileType string

const (
	FileTypeFolder FileType = "folder"
	FileTypeFile   FileType = "file"
	FileTypeImage  FileType = "image"
)

func (t FileType) Valid() bool {
	return t == FileTypeFolder || t == FileTypeFile || t == FileTypeImage
}

// ThumbnailWidths are the derivative sizes produced for every image upload.
var ThumbnailWidths = []int{500, 250, 100}

var hexIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ParentRef is either the root sentinel or the identifier of a folder.
// The zero value is the root. It serializes as the number 0 for the root
// and as the hex identifier string otherwise.
type ParentRef struct {
	id string
}

func RootParent() ParentRef {
	return ParentRef{}
}

func FolderParent(id string) ParentRef {
	return ParentRef{id: id}
}

func (p ParentRef) IsRoot() bool {
	return p.id == ""
}

func (p ParentRef) ID() string {
	return p.id
}

// Key returns the stored representation: "0" for the root, the hex
// identifier otherwise.
func (p ParentRef) Key() string {
	if p.id == "" {
		return "0"
	}
	return p.id
}

func (p ParentRef) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte("0"), nil
	}
	return json.Marshal(p.id)
}

func (p *ParentRef) UnmarshalJSON(data []byte) error {
	ref, err := ParseParentRef(string(data))
	if err != nil {
		return err
	}
	*p = ref
	return nil
}

// ParseParentRef resolves the loosely-typed parent value accepted at the
// boundary into a ParentRef. Accepted inputs: empty, 0, "0", or a 24-hex
// identifier (optionally JSON-quoted).
func ParseParentRef(raw string) (ParentRef, error) {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	switch raw {
	case "", "0", "null":
		return RootParent(), nil
	}
	if !hexIDPattern.MatchString(raw) {
		return ParentRef{}, fmt.Errorf("invalid parent id %q", raw)
	}
	return FolderParent(raw), nil
}

// File is the central metadata record for folders, files, and images.
type File struct {
	ID         string
	UserID     string
	Name       string
	Type       FileType
	IsPublic   bool
	Parent     ParentRef
	ContentRef string
}

// ListPageSize is the fixed page size for child listings.
const ListPageSize = 20

type FileStore interface {
	Insert(ctx context.Context, f File) (File, error)
	Get(ctx context.Context, id string) (File, error)
	GetOwned(ctx context.Context, id, userID string) (File, error)
	ListChildren(ctx context.Context, userID string, parent ParentRef, page int) ([]File, error)
	SetPublic(ctx context.Context, id, userID string, isPublic bool) (File, error)
	Count(ctx context.Context) (int64, error)
}

type ContentStore interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, ref string, width int) ([]byte, error)
	PutDerivative(ctx context.Context, ref string, width int, data []byte) error
	Delete(ctx context.Context, ref string) error
}
