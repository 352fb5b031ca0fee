// Command docstore runs a line-oriented operation script against an
// in-process document-store cluster.
//
// It is a thin composition root, in the same vein as torua's cmd/node and
// cmd/coordinator: it has no business logic of its own. It builds a
// balancer.LoadBalancer, optionally seeds it from a YAML cluster config,
// then reads its script file one line at a time and feeds each line
// through the balancer, printing the fixed two-line transcript for every
// EDIT and GET to stdout.
//
// Script lines:
//
//	EDIT <name> <content...>
//	GET <name>
//	ADD <id> <cache-size>
//	REMOVE <id>
//
// Blank lines and lines starting with "#" are ignored.
//
// Example usage:
//
//	docstore --vnodes script.txt
//	docstore --config cluster.yaml script.txt
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/dreamware/docstore/internal/balancer"
	"github.com/dreamware/docstore/internal/docserver"
)

// logFatal is a variable, not a direct call, so tests can substitute a
// non-terminating stand-in.
var logFatal = log.Fatalf

// ClusterConfig describes the servers a cluster starts with, read from an
// optional YAML file passed via --config.
type ClusterConfig struct {
	Vnodes  bool `yaml:"vnodes"`
	Servers []struct {
		ID        uint32 `yaml:"id"`
		CacheSize int    `yaml:"cache_size"`
	} `yaml:"servers"`
}

type cli struct {
	Script string `arg:"" type:"existingfile" help:"Path to the operation script."`
	Config string `help:"Optional YAML file describing the initial cluster topology." type:"path"`
	Vnodes bool   `help:"Enable 3x virtual-node replication on the hash ring."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("docstore"),
		kong.Description("Runs an operation script against an in-process document-store cluster."),
	)

	cfg, err := loadClusterConfig(c.Config)
	if err != nil {
		logFatal("docstore: %v", err)
		return
	}

	lb := balancer.New(c.Vnodes || cfg.Vnodes, os.Stdout)
	for _, s := range cfg.Servers {
		lb.AddServer(s.ID, s.CacheSize)
	}

	f, err := os.Open(c.Script)
	if err != nil {
		logFatal("docstore: %v", err)
		return
	}
	defer f.Close()

	if err := runScript(lb, f, os.Stdout); err != nil {
		logFatal("docstore: %v", err)
	}
}

// loadClusterConfig reads and parses the YAML cluster config at path. An
// empty path is not an error; it yields a zero ClusterConfig, so the
// cluster starts with no servers until the script's own ADD lines create
// them.
func loadClusterConfig(path string) (ClusterConfig, error) {
	if path == "" {
		return ClusterConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ClusterConfig{}, fmt.Errorf("reading cluster config: %w", err)
	}
	var cfg ClusterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ClusterConfig{}, fmt.Errorf("parsing cluster config: %w", err)
	}
	return cfg, nil
}

// runScript reads r line by line and executes each non-blank,
// non-comment line against lb, writing the transcript of every EDIT and
// GET to out.
func runScript(lb *balancer.LoadBalancer, r io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := execLine(lb, line, out); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

// execLine parses and executes a single script line against lb.
func execLine(lb *balancer.LoadBalancer, line string, out io.Writer) error {
	fields := strings.Fields(line)
	switch op := strings.ToUpper(fields[0]); op {
	case "EDIT":
		if len(fields) < 3 {
			return fmt.Errorf("EDIT requires a document name and content")
		}
		content := strings.Join(fields[2:], " ")
		resp := lb.Route(docserver.Request{Kind: docserver.Edit, DocName: fields[1], Content: content})
		fmt.Fprintln(out, docserver.RenderResponse(resp))

	case "GET":
		if len(fields) < 2 {
			return fmt.Errorf("GET requires a document name")
		}
		resp := lb.Route(docserver.Request{Kind: docserver.Read, DocName: fields[1]})
		fmt.Fprintln(out, docserver.RenderResponse(resp))

	case "ADD":
		if len(fields) < 3 {
			return fmt.Errorf("ADD requires a server id and cache size")
		}
		id, err := parseServerID(fields[1])
		if err != nil {
			return err
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid cache size %q: %w", fields[2], err)
		}
		lb.AddServer(id, size)

	case "REMOVE":
		if len(fields) < 2 {
			return fmt.Errorf("REMOVE requires a server id")
		}
		id, err := parseServerID(fields[1])
		if err != nil {
			return err
		}
		lb.RemoveServer(id)

	default:
		return fmt.Errorf("unknown operation %q", fields[0])
	}
	return nil
}

func parseServerID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid server id %q: %w", s, err)
	}
	return uint32(id), nil
}
