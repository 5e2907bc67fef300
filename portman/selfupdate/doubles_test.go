package selfupdate

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/portmanops/portman/portman/pkgdb"
)

// fakeStore is an in-memory configstore.Store that records writes.
type fakeStore struct {
	values  map[string]string
	sets    int
	saves   int
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]string)}
}

func (f *fakeStore) GetWithDefault(key, def string) string {
	if value, ok := f.values[key]; ok && value != "" {
		return value
	}
	return def
}

func (f *fakeStore) Set(key, value string) {
	f.sets++
	f.values[key] = value
}

func (f *fakeStore) Save() error {
	f.saves++
	return f.saveErr
}

// stubUI is a prompt.UI that answers from canned values and records
// every interaction.
type stubUI struct {
	selectValue   string
	selectErr     error
	selectCalls   int
	selectDefault string
	selectOptions []string

	confirmAnswer bool
	confirmErr    error
	confirmCalls  int
}

func (u *stubUI) Select(title string, options []string, value *string) error {
	u.selectCalls++
	u.selectDefault = *value
	u.selectOptions = options
	if u.selectErr != nil {
		return u.selectErr
	}
	if u.selectValue != "" {
		*value = u.selectValue
	}
	return nil
}

func (u *stubUI) Confirm(title string, value *bool) error {
	u.confirmCalls++
	if u.confirmErr != nil {
		return u.confirmErr
	}
	*value = u.confirmAnswer
	return nil
}

// MockStrategy records strategy calls.
type MockStrategy struct {
	mock.Mock
}

func (m *MockStrategy) SystemCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStrategy) DoDirect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStrategy) StampSet() error {
	return m.Called().Error(0)
}

func (m *MockStrategy) StampClear() error {
	return m.Called().Error(0)
}

func (m *MockStrategy) ClearMetadata() error {
	return m.Called().Error(0)
}

// MockInstaller records install and index refresh calls.
type MockInstaller struct {
	mock.Mock
}

func (m *MockInstaller) Install(ctx context.Context, names []string) error {
	return m.Called(ctx, names).Error(0)
}

func (m *MockInstaller) RefreshIndex(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// fakeDB is a map-backed pkgdb.Database.
type fakeDB struct {
	packages  map[string]*pkgdb.Package
	essential []string
	supports  bool
	forgets   int
	reloads   int
	reloadErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{packages: make(map[string]*pkgdb.Package), supports: true}
}

func (f *fakeDB) ForgetAll() { f.forgets++ }

func (f *fakeDB) ReloadAll() error {
	f.reloads++
	return f.reloadErr
}

func (f *fakeDB) LookupByName(name string) (*pkgdb.Package, bool) {
	pkg, ok := f.packages[name]
	return pkg, ok
}

func (f *fakeDB) ListEssential() []string { return f.essential }

func (f *fakeDB) SupportsClient(version string) bool { return f.supports }

// recordingReplacer captures the intended process replacement instead
// of performing it.
type recordingReplacer struct {
	calls int
	path  string
	args  []string
	err   error
}

func (r *recordingReplacer) Replace(path string, args []string) error {
	r.calls++
	r.path = path
	r.args = args
	return r.err
}

// stubFinisher counts finalization runs.
type stubFinisher struct {
	calls int
	err   error
}

func (s *stubFinisher) DoFinish(ctx context.Context) error {
	s.calls++
	return s.err
}
