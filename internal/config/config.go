// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

// Package config reads and writes the YAML launch configuration of a dev-mode session.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/putnami/gwtdev/internal/ioutil"
	"github.com/putnami/gwtdev/internal/jvm"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "gwtdev.yaml"

// Names of the two configured processes.
const (
	CodeServer = "codeserver"
	WebServer  = "webserver"
)

// ErrMissingMainClass is returned when a process has no main class.
var ErrMissingMainClass = errors.New("main_class is required")

// Config is the launch configuration.
type Config struct {
	JavaExecutable string        `yaml:"java_executable,omitempty"`
	ReadyTimeout   time.Duration `yaml:"ready_timeout,omitempty"`
	OpenBrowser    bool          `yaml:"open_browser,omitempty"`
	CodeServer     Process       `yaml:"codeserver"`
	WebServer      Process       `yaml:"webserver"`
}

// Process configures one java process.
type Process struct {
	MainClass         string            `yaml:"main_class"`
	ClassPath         []string          `yaml:"classpath,omitempty"`
	SeparateClassPath []string          `yaml:"separate_classpath,omitempty"`
	PathingJar        string            `yaml:"pathing_jar,omitempty"`
	CompressClassPath bool              `yaml:"compress_classpath,omitempty"`
	Args              []string          `yaml:"args,omitempty"`
	WorkDir           string            `yaml:"work_dir,omitempty"`
	Env               map[string]string `yaml:"env,omitempty"`
	URL               string            `yaml:"url,omitempty"`
	Java              jvm.JavaOptions   `yaml:"java"`
}

// Default returns a configuration with nothing but defaults set.
func Default() *Config {
	return &Config{
		CodeServer: Process{Java: jvm.NewJavaOptions()},
		WebServer:  Process{Java: jvm.NewJavaOptions()},
	}
}

// Process returns the process configuration called name.
func (c *Config) Process(name string) (*Process, error) {
	switch name {
	case CodeServer:
		return &c.CodeServer, nil
	case WebServer:
		return &c.WebServer, nil
	}
	return nil, fmt.Errorf("unknown process '%s', expected '%s' or '%s'", name, CodeServer, WebServer)
}

// Read configuration in YAML format from reader r. Unknown keys are rejected.
func Read(r io.Reader) (*Config, error) {
	config := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Load reads filename, resolves relative paths against its directory, applies environment overrides looked up
// with getenv and validates the result.
func Load(filename string, getenv func(string) string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read configuration: %w", err)
	}
	defer f.Close()
	config, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	config.resolvePaths(filepath.Dir(abs))
	if err := config.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*Process{&c.CodeServer, &c.WebServer} {
		p.ClassPath = resolveAll(base, p.ClassPath)
		p.SeparateClassPath = resolveAll(base, p.SeparateClassPath)
		p.PathingJar = resolve(base, p.PathingJar)
		p.WorkDir = resolve(base, p.WorkDir)
	}
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func resolveAll(base string, paths []string) []string {
	if len(paths) == 0 {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolve(base, p)
	}
	return out
}

// Validate checks both process configurations and the session settings.
func (c *Config) Validate() error {
	if c.ReadyTimeout < 0 {
		return fmt.Errorf("ready_timeout must not be negative, got %s", c.ReadyTimeout)
	}
	for _, name := range []string{CodeServer, WebServer} {
		p, _ := c.Process(name)
		if err := p.validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (p *Process) validate() error {
	if p.MainClass == "" {
		return ErrMissingMainClass
	}
	if p.PathingJar != "" && p.CompressClassPath {
		return fmt.Errorf("pathing_jar and compress_classpath cannot be combined")
	}
	if p.URL != "" {
		u, err := url.Parse(p.URL)
		if err != nil {
			return fmt.Errorf("invalid url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("url must be http or https, got '%s'", p.URL)
		}
	}
	if err := p.Java.Validate(); err != nil {
		return fmt.Errorf("java: %w", err)
	}
	return nil
}

// Write writes config in YAML format to writer w.
func (c *Config) Write(w io.Writer) error {
	var doc yaml.Node
	if err := doc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if len(doc.Content) > 0 {
		doc.Content[0].HeadComment = "gwtdev launch configuration. Relative paths are resolved against this file's directory."
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return enc.Close()
}

// WriteFile writes the config to a temporary file in the parent directory of filename, then renames the temporary
// file to filename.
func (c *Config) WriteFile(filename string) error {
	return ioutil.AtomicWrite(filename, c.Write)
}
