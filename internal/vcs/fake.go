package vcs

import "context"

// FakeRepo is an in-memory Repo for tests. Checkout succeeds for any ref
// unless CheckoutErr is set, and records the sequence of refs checked out.
type FakeRepo struct {
	Path        string
	TagList     []string
	HeadHash    string
	Checkouts   []string
	TagsErr     error
	CheckoutErr error
}

// Dir returns the configured path.
func (f *FakeRepo) Dir() string {
	return f.Path
}

// Tags returns the configured tag list.
func (f *FakeRepo) Tags(_ context.Context) ([]string, error) {
	if f.TagsErr != nil {
		return nil, f.TagsErr
	}
	return f.TagList, nil
}

// Checkout records the ref.
func (f *FakeRepo) Checkout(_ context.Context, ref string) error {
	if f.CheckoutErr != nil {
		return f.CheckoutErr
	}
	f.Checkouts = append(f.Checkouts, ref)
	return nil
}

// Head returns the configured hash.
func (f *FakeRepo) Head(_ context.Context) (string, error) {
	return f.HeadHash, nil
}
