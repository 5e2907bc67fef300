package pkgdb

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const (
	descDirName    = "desc"
	statusFileName = "status"
	collectionFile = "collection.conf"
)

// DescDatabase reads the description collection from <BaseDir>/desc
// (one .desc file per package) and the installed state from
// <BaseDir>/status.
type DescDatabase struct {
	BaseDir string
	Log     *logrus.Logger

	packages  map[string]*Package
	minClient string
}

// DescDir is where synchronization strategies publish the collection.
func (d *DescDatabase) DescDir() string {
	return filepath.Join(d.BaseDir, descDirName)
}

func (d *DescDatabase) statusPath() string {
	return filepath.Join(d.BaseDir, statusFileName)
}

func (d *DescDatabase) ForgetAll() {
	d.packages = nil
	d.minClient = ""
}

func (d *DescDatabase) ReloadAll() error {
	installed, err := d.loadStatus()
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(d.DescDir())
	if err != nil {
		return fmt.Errorf("reading description collection %s: %w", d.DescDir(), err)
	}

	packages := make(map[string]*Package)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desc") {
			continue
		}
		pkg, err := d.loadDescription(filepath.Join(d.DescDir(), entry.Name()))
		if err != nil {
			if d.Log != nil {
				d.Log.WithError(err).WithField("file", entry.Name()).Warn("skipping unreadable package description")
			}
			continue
		}
		pkg.InstalledVersion = installed[pkg.Name]
		packages[pkg.Name] = pkg
	}

	d.packages = packages
	d.minClient = d.loadMinClient()
	return nil
}

func (d *DescDatabase) loadDescription(path string) (*Package, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	section := file.Section("package")
	name := section.Key("Name").String()
	if name == "" {
		return nil, fmt.Errorf("parsing %s: package has no name", path)
	}

	return &Package{
		Name:        name,
		Version:     section.Key("Version").String(),
		Essential:   section.Key("Essential").MustBool(false),
		Description: section.Key("Description").String(),
	}, nil
}

// loadStatus maps package name to installed version. A missing status
// file means nothing is installed yet.
func (d *DescDatabase) loadStatus() (map[string]string, error) {
	file, err := ini.LooseLoad(d.statusPath())
	if err != nil {
		return nil, fmt.Errorf("reading installed state %s: %w", d.statusPath(), err)
	}

	installed := make(map[string]string)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		installed[section.Name()] = section.Key("Version").String()
	}
	return installed, nil
}

func (d *DescDatabase) loadMinClient() string {
	file, err := ini.LooseLoad(filepath.Join(d.DescDir(), collectionFile))
	if err != nil {
		return ""
	}
	return file.Section("collection").Key("MinClientVersion").String()
}

func (d *DescDatabase) LookupByName(name string) (*Package, bool) {
	pkg, ok := d.packages[name]
	return pkg, ok
}

func (d *DescDatabase) ListEssential() []string {
	var names []string
	for _, pkg := range d.packages {
		if pkg.Essential {
			names = append(names, pkg.Name)
		}
	}
	sort.Strings(names)
	return names
}

func (d *DescDatabase) SupportsClient(version string) bool {
	if d.minClient == "" {
		return true
	}
	current, err := semver.NewVersion(version)
	if err != nil {
		// Development builds carry versions like "dev"; the collection
		// cannot say anything about them.
		return true
	}
	minimum, err := semver.NewVersion(d.minClient)
	if err != nil {
		return true
	}
	return !current.LessThan(minimum)
}
