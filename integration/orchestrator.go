// Package integration drives the external proving toolchain: it compiles a
// circuit into a verifier contract, rewrites that contract into its
// deployable form and generates proofs from witness arguments.
//
// Builds of different names are independent and may run concurrently. Each
// name owns the work directory <output_dir>/<name>_zok, which is recreated on
// every build and guarded by a lock file.
package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cloakzk/zkcircuit/field"
	"github.com/cloakzk/zkcircuit/utils"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	workDirSuffix  = "_zok"
	verifierSuffix = "_verifier.sol"
	verifierFile   = "verifier.sol"
	proofFile      = "proof.json"
	sourceExt      = ".code"
)

type Orchestrator struct {
	cfg     Config
	runner  Runner
	log     zerolog.Logger
	library string
	locks   *keyedMutex
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(o *Orchestrator) {
		o.runner = r
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// New validates cfg and returns an orchestrator using it.
func New(cfg Config, opts ...Option) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &Orchestrator{
		cfg:     cfg,
		runner:  ExecRunner{},
		log:     logger.Logger(),
		library: defaultLibrary,
		locks:   newKeyedMutex(),
	}
	if cfg.Library != "" {
		lib, err := os.ReadFile(cfg.Library)
		if err != nil {
			return nil, fmt.Errorf("reading library: %w", err)
		}
		o.library = string(lib)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Result is a successful build.
type Result struct {
	Name     string
	Contract string
	// ContractPath is the written <name>_verifier.sol.
	ContractPath string
	// WorkDir holds the proving artifacts needed by Prove.
	WorkDir string
}

// WorkDir returns the work directory of name.
func (o *Orchestrator) WorkDir(name string) string {
	return filepath.Join(o.cfg.OutputDir, name+workDirSuffix)
}

// Build compiles source, runs the setup, exports the verifier and rewrites it
// into the deployable contract called name. A failed build returns no result
// and leaves no verifier contract for name behind.
func (o *Orchestrator) Build(ctx context.Context, name string, source string) (*Result, error) {
	if err := os.MkdirAll(o.cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}
	dir := o.WorkDir(name)
	unlock, err := o.lockPath(dir)
	if err != nil {
		return nil, err
	}
	defer unlock()

	contractPath := filepath.Join(o.cfg.OutputDir, name+verifierSuffix)
	if err := os.Remove(contractPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	codeFile := name + sourceExt
	if err := os.WriteFile(filepath.Join(dir, codeFile), []byte(source), 0o644); err != nil {
		return nil, err
	}

	compile := []string{"compile", "-i", codeFile}
	if o.cfg.Light {
		compile = append(compile, "--light")
	}
	steps := [][]string{
		compile,
		{"setup", "--proving-scheme", o.cfg.Scheme},
		{"export-verifier", "--proving-scheme", o.cfg.Scheme},
	}
	for _, args := range steps {
		if err := o.run(ctx, dir, args, source, nil); err != nil {
			return nil, err
		}
	}

	verifier, err := os.ReadFile(filepath.Join(dir, verifierFile))
	if err != nil {
		return nil, err
	}
	contract, err := o.rewrite(string(verifier), name, source)
	if err != nil {
		return nil, err
	}
	o.log.Info().Str("name", name).Int("verifierLoc", utils.LinesOfCode(contract)).Msg("verifier exported")

	if err := writeFileAtomic(contractPath, []byte(contract)); err != nil {
		return nil, err
	}
	return &Result{
		Name:         name,
		Contract:     contract,
		ContractPath: contractPath,
		WorkDir:      dir,
	}, nil
}

func (o *Orchestrator) rewrite(verifier, name, source string) (string, error) {
	contract := PrependSource(verifier, source)
	contract, err := RenameContract(contract, name)
	if err != nil {
		return "", err
	}
	contract, err = ExtractLibrary(contract, o.library)
	if err != nil {
		return "", err
	}
	if err := o.saveLibrary(); err != nil {
		return "", err
	}
	return AddWrapper(contract)
}

// saveLibrary writes the shared library unless an identical copy exists.
func (o *Orchestrator) saveLibrary() error {
	path := filepath.Join(o.cfg.OutputDir, LibraryFile)
	unlock, err := o.lockPath(path)
	if err != nil {
		return err
	}
	defer unlock()

	content := LibraryFileContent(o.library)
	if existing, err := os.ReadFile(path); err == nil && string(existing) == content {
		return nil
	}
	return writeFileAtomic(path, []byte(content))
}

// Circuit is a named circuit source.
type Circuit struct {
	Name   string
	Source string
}

// BuildAll builds circuits concurrently, at most Config.Concurrency at a
// time. Results are in the order of circuits. The first failure cancels the
// builds that have not started yet.
func (o *Orchestrator) BuildAll(ctx context.Context, circuits []Circuit) ([]*Result, error) {
	res := make([]*Result, len(circuits))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Concurrency)
	for i, c := range circuits {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := o.Build(ctx, c.Name, c.Source)
			if err != nil {
				return fmt.Errorf("building %s: %w", c.Name, err)
			}
			res[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Prove computes the witness for args, which must follow the circuit's
// parameter order, and generates a proof in workDir.
func (o *Orchestrator) Prove(ctx context.Context, workDir string, args []string) (*Proof, error) {
	witness, err := field.CanonicalAll(args)
	if err != nil {
		return nil, err
	}
	unlock, err := o.lockPath(filepath.Clean(workDir))
	if err != nil {
		return nil, err
	}
	defer unlock()

	steps := [][]string{
		append([]string{"compute-witness", "-a"}, witness...),
		{"generate-proof", "--proving-scheme", o.cfg.Scheme},
	}
	for _, a := range steps {
		if err := o.run(ctx, workDir, a, "", witness); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(filepath.Join(workDir, proofFile))
	if err != nil {
		return nil, err
	}
	return ParseProof(data)
}

// run executes one toolchain step. Failures carry source or witness for
// reproduction.
func (o *Orchestrator) run(ctx context.Context, dir string, args []string, source string, witness []string) error {
	start := time.Now()
	out, err := o.runner.Run(ctx, dir, o.cfg.Binary, args...)
	if err != nil {
		terr := &ToolchainError{Step: args[0], Dir: dir, Source: source, Args: witness, Output: out, Err: err}
		o.log.Error().Err(err).Str("step", args[0]).Str("dir", dir).Msg("toolchain step failed")
		return terr
	}
	o.log.Debug().Str("step", args[0]).Str("dir", dir).Dur("took", time.Since(start)).Msg("toolchain step")
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
