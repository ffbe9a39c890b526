package deploy

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Credentials carries the cloud keys a deploy runs under. They are decrypted
// just before use and never persisted by this package.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// Deployer applies and destroys rendered plans. Deploy returns the resulting
// state file so callers can persist it.
type Deployer interface {
	Deploy(ctx context.Context, plan *Plan, creds Credentials) ([]byte, error)
	Destroy(ctx context.Context, plan *Plan, state []byte, creds Credentials) error
}

// CLIDeployer shells out to the terraform binary in a per-plan working
// directory.
type CLIDeployer struct {
	// Binary is the terraform executable, "terraform" when empty.
	Binary string
	// WorkDir is where per-plan directories are created, os.TempDir when empty.
	WorkDir string
}

func NewCLIDeployer(binary, workDir string) *CLIDeployer {
	return &CLIDeployer{Binary: binary, WorkDir: workDir}
}

func (d *CLIDeployer) Deploy(ctx context.Context, plan *Plan, creds Credentials) ([]byte, error) {
	dir, err := d.prepare(plan, nil)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := d.run(ctx, dir, creds, "init", "-input=false"); err != nil {
		return nil, err
	}
	if err := d.run(ctx, dir, creds, "apply", "-auto-approve", "-input=false"); err != nil {
		return nil, err
	}

	state, err := os.ReadFile(filepath.Join(dir, "terraform.tfstate"))
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	return state, nil
}

func (d *CLIDeployer) Destroy(ctx context.Context, plan *Plan, state []byte, creds Credentials) error {
	dir, err := d.prepare(plan, state)
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	if err := d.run(ctx, dir, creds, "init", "-input=false"); err != nil {
		return err
	}
	return d.run(ctx, dir, creds, "destroy", "-auto-approve", "-input=false")
}

// prepare lays out a working directory with the plan configuration and,
// when destroying, the previously captured state file.
func (d *CLIDeployer) prepare(plan *Plan, state []byte) (string, error) {
	base := d.WorkDir
	if base == "" {
		base = os.TempDir()
	}
	dir, err := os.MkdirTemp(base, "range-"+plan.ID+"-")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}

	cfg, err := plan.JSON()
	if err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "main.tf.json"), cfg, 0o600); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("write plan: %w", err)
	}
	if state != nil {
		if err := os.WriteFile(filepath.Join(dir, "terraform.tfstate"), state, 0o600); err != nil {
			os.RemoveAll(dir)
			return "", fmt.Errorf("write state: %w", err)
		}
	}
	return dir, nil
}

func (d *CLIDeployer) run(ctx context.Context, dir string, creds Credentials, args ...string) error {
	binary := d.Binary
	if binary == "" {
		binary = "terraform"
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(),
		"AWS_ACCESS_KEY_ID="+creds.AccessKey,
		"AWS_SECRET_ACCESS_KEY="+creds.SecretKey,
	)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("terraform %s: %w: %s", args[0], err, stderr.String())
	}
	return nil
}
