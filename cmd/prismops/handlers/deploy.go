package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hardev/prismops/internal/config"
	"github.com/hardev/prismops/internal/deploy"
	"github.com/hardev/prismops/internal/prism"
	"github.com/hardev/prismops/internal/ui"
)

// DeployOptions carries the flags of the deploy command.
type DeployOptions struct {
	ConfigPath  string
	ProfilePath string
	Name        string
	ImageName   string
	SubnetName  string
	DoIt        bool
	DryRun      bool
	Yes         bool
}

// prismAPI is the slice of prism.Client the deploy handler needs.
type prismAPI interface {
	Ping(ctx context.Context) error
	ListImages(ctx context.Context) ([]prism.Image, error)
	ListSubnets(ctx context.Context) ([]prism.Subnet, error)
	CreateVM(ctx context.Context, req *prism.CreateVMRequest) (json.RawMessage, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newDeployClient creates the Prism client used for deployment.
	newDeployClient = func(cfg *config.Config) prismAPI {
		return prism.NewClient(cfg.BaseURL, cfg.Username, cfg.Password)
	}

	// newSelector creates the inventory selector.
	newSelector = func() ui.Selector {
		return ui.PromptSelector{}
	}

	// confirmDeploy asks for the final go-ahead.
	confirmDeploy = ui.Confirm

	// nowFunc returns the current time. Pinned in tests.
	nowFunc = time.Now

	// writeDeployRecord persists the post-deployment audit record.
	writeDeployRecord = deploy.WriteRecord
)

// Deploy runs the VM deployment workflow: verify connectivity, resolve an
// image and a subnet from inventory, build the creation payload, and submit
// it once the operator has opted in.
//
// Any transport or API failure on this path is fatal; unlike the bulk
// category update there is no per-item recovery to fall back on.
func Deploy(ctx context.Context, opts DeployOptions) error {
	cfg, err := loadConfigFile(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	profile := config.DefaultProfile()
	if opts.ProfilePath != "" {
		profile, err = config.LoadProfile(opts.ProfilePath)
		if err != nil {
			return fmt.Errorf("failed to load deploy profile: %w", err)
		}
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid deploy profile: %w", err)
	}

	client := newDeployClient(cfg)

	log.Printf("Connecting to %s as %s", cfg.BaseURL, cfg.Username)
	if err := client.Ping(ctx); err != nil {
		if prism.IsUnauthorized(err) {
			return fmt.Errorf("authentication failed for %s: %w", cfg.Username, err)
		}
		return fmt.Errorf("failed to reach Prism Central: %w", err)
	}

	image, err := chooseImage(ctx, client, opts.ImageName)
	if err != nil {
		return canceledOrErr(err)
	}
	subnet, err := chooseSubnet(ctx, client, opts.SubnetName)
	if err != nil {
		return canceledOrErr(err)
	}

	name := opts.Name
	if name == "" {
		name = deploy.DefaultVMName(nowFunc())
	}

	req := deploy.BuildCreateRequest(name, profile, image, subnet)
	fmt.Println(ui.RenderDeploySummary(name, image, subnet, profile))

	if opts.DryRun {
		payload, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode creation payload: %w", err)
		}
		fmt.Println("Dry run: the following payload would be sent to Prism Central.")
		fmt.Println(string(payload))
		return nil
	}

	if !opts.DoIt {
		fmt.Println("Nothing created. Re-run with --do-it to deploy this VM.")
		return nil
	}

	if !opts.Yes {
		ok, err := confirmDeploy(ctx, fmt.Sprintf("Create VM %q?", name),
			fmt.Sprintf("Image %s on subnet %s", image.Name, subnet.Name))
		if err != nil {
			return canceledOrErr(err)
		}
		if !ok {
			fmt.Println("Deployment canceled.")
			return nil
		}
	}

	log.Printf("Creating VM %s (image %s, subnet %s)", name, image.Name, subnet.Name)
	raw, err := client.CreateVM(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create VM: %w", err)
	}
	fmt.Printf("✓ VM creation accepted for %s\n", name)

	rec := &deploy.Record{
		Timestamp:   nowFunc().Format(time.RFC3339),
		VMName:      name,
		ImageUsed:   image.Name,
		NetworkUsed: subnet.Name,
		Request:     req,
		APIResponse: raw,
	}
	path, err := writeDeployRecord(".", rec, nowFunc())
	if err != nil {
		log.Printf("Warning: failed to write deployment record: %v", err)
		return nil
	}
	fmt.Printf("Deployment record written to %s\n", path)
	return nil
}

// canceledOrErr turns an operator-initiated abort into a clean exit.
func canceledOrErr(err error) error {
	if errors.Is(err, ui.ErrCanceled) {
		fmt.Println("Deployment canceled.")
		return nil
	}
	return err
}

// chooseImage resolves the boot image, either by name or interactively.
func chooseImage(ctx context.Context, client prismAPI, name string) (*prism.Image, error) {
	images, err := client.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no disk images available on this Prism Central")
	}

	if name != "" {
		return deploy.FindImage(images, name)
	}

	fmt.Println(ui.RenderImages(images))
	choices := make([]ui.Choice, 0, len(images))
	for i, img := range images {
		choices = append(choices, ui.Choice{Index: i, Label: img.Name})
	}
	idx, err := newSelector().Select(ctx, "Select a disk image", choices)
	if err != nil {
		return nil, err
	}
	return &images[idx], nil
}

// chooseSubnet resolves the subnet, either by name or interactively.
func chooseSubnet(ctx context.Context, client prismAPI, name string) (*prism.Subnet, error) {
	subnets, err := client.ListSubnets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subnets: %w", err)
	}
	if len(subnets) == 0 {
		return nil, fmt.Errorf("no subnets available on this Prism Central")
	}

	if name != "" {
		return deploy.FindSubnet(subnets, name)
	}

	fmt.Println(ui.RenderSubnets(subnets))
	choices := make([]ui.Choice, 0, len(subnets))
	for i, sn := range subnets {
		choices = append(choices, ui.Choice{Index: i, Label: sn.Name})
	}
	idx, err := newSelector().Select(ctx, "Select a subnet", choices)
	if err != nil {
		return nil, err
	}
	return &subnets[idx], nil
}
