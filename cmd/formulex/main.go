package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v2"

	"github.com/krishnamohan-seelam/formulex"
)

// config holds defaults loadable from a YAML file. Explicit flags win.
type config struct {
	MaxDepth int  `yaml:"max_depth"`
	Echo     bool `yaml:"echo"`
}

func main() {
	log.SetFlags(0)
	var (
		inname, cfgname string
		nl, echo, watch bool
		depth           int
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&cfgname, "config", "", "YAML file with defaults for -depth and -echo")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&watch, "watch", false, "reformat -in whenever it changes")
	flag.IntVar(&depth, "depth", formulex.DefaultMaxDepth, "maximum expression nesting depth")
	flag.Parse()

	if cfgname != "" {
		cfg, err := loadConfig(cfgname)
		if err != nil {
			log.Fatal(err)
		}
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["depth"] && cfg.MaxDepth > 0 {
			depth = cfg.MaxDepth
		}
		if !set["echo"] {
			echo = cfg.Echo
		}
	}
	if depth < 1 {
		log.Fatalf("depth (%d) must be positive", depth)
	}
	opts := []formulex.Option{formulex.MaxDepth(depth)}

	if watch {
		if inname == "" || inname == "-" {
			log.Fatal("-watch requires -in with a file name")
		}
		if err := watchFile(inname, func() error {
			return runFile(inname, nl, echo, opts)
		}); err != nil {
			log.Fatal(err)
		}
		return
	}

	srcs, err := gather(inname, nl, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	srcs = append(srcs, flag.Args()...)
	for _, src := range srcs {
		if err := run(src, echo, opts); err != nil {
			log.Fatal(err)
		}
	}
}

// run parses one expression and prints its bracketed form.
func run(src string, echo bool, opts []formulex.Option) error {
	e, err := formulex.ParseString(src, opts...)
	if err != nil {
		return err
	}
	if echo {
		repr.Println(e.Root())
	}
	fmt.Println(e)
	return nil
}

// runFile reformats every expression in the named file.
func runFile(name string, nl, echo bool, opts []formulex.Option) error {
	srcs, err := gather(name, nl, false)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		if err := run(src, echo, opts); err != nil {
			return err
		}
	}
	return nil
}

// gather reads expression sources from a file or stdin. With nl, each
// non-blank line is a separate expression; otherwise the whole input is one.
func gather(inname string, nl, std bool) ([]string, error) {
	var data []byte
	switch {
	case inname != "" && inname != "-":
		b, err := os.ReadFile(inname)
		if err != nil {
			return nil, err
		}
		data = b
	case inname == "-" || std:
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		data = b
	default:
		return nil, nil
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	if !nl {
		return []string{string(data)}, nil
	}
	var srcs []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		srcs = append(srcs, line)
	}
	return srcs, nil
}

// watchFile re-runs rebuild whenever the named file is written. Parse
// failures are reported and watching continues.
func watchFile(name string, rebuild func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(name)); err != nil {
		return err
	}
	if err := rebuild(); err != nil {
		fmt.Println("error:", err)
	}
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(name) {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("-- %s changed\n", name)
				if err := rebuild(); err != nil {
					fmt.Println("error:", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Println("watch error:", err)
		}
	}
}

func loadConfig(name string) (config, error) {
	var cfg config
	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", name, err)
	}
	return cfg, nil
}
