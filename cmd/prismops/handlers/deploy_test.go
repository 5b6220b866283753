package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardev/prismops/internal/config"
	"github.com/hardev/prismops/internal/deploy"
	"github.com/hardev/prismops/internal/prism"
	"github.com/hardev/prismops/internal/ui"
)

type fakeAPI struct {
	pingErr     error
	pingCalls   int
	images      []prism.Image
	imagesErr   error
	imagesCalls int
	subnets     []prism.Subnet
	createErr   error
	createResp  json.RawMessage
	createCalls int
	lastRequest *prism.CreateVMRequest
}

func (f *fakeAPI) Ping(_ context.Context) error {
	f.pingCalls++
	return f.pingErr
}

func (f *fakeAPI) ListImages(_ context.Context) ([]prism.Image, error) {
	f.imagesCalls++
	return f.images, f.imagesErr
}

func (f *fakeAPI) ListSubnets(_ context.Context) ([]prism.Subnet, error) {
	return f.subnets, nil
}

func (f *fakeAPI) CreateVM(_ context.Context, req *prism.CreateVMRequest) (json.RawMessage, error) {
	f.createCalls++
	f.lastRequest = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResp, nil
}

type cannedSelector struct {
	index int
	err   error
	calls int
}

func (s *cannedSelector) Select(_ context.Context, _ string, _ []ui.Choice) (int, error) {
	s.calls++
	return s.index, s.err
}

func inventoryAPI() *fakeAPI {
	return &fakeAPI{
		images: []prism.Image{
			{ExtID: "img-1", Name: "win2022-base", Type: "DISK_IMAGE", SizeInBytes: 64 << 30},
			{ExtID: "img-2", Name: "ubuntu-24", Type: "DISK_IMAGE", SizeInBytes: 8 << 30},
		},
		subnets: []prism.Subnet{
			{ExtID: "net-1", Name: "prod-vlan120"},
			{ExtID: "net-2", Name: "lab-vlan7"},
		},
		createResp: json.RawMessage(`{"data":{"extId":"task-1"}}`),
	}
}

// stubDeploy swaps every factory variable the deploy handler uses and
// restores them when the test finishes.
func stubDeploy(t *testing.T, api *fakeAPI, sel ui.Selector) (records *[]deploy.Record) {
	t.Helper()

	origLoad := loadConfigFile
	origClient := newDeployClient
	origSelector := newSelector
	origConfirm := confirmDeploy
	origNow := nowFunc
	origWrite := writeDeployRecord
	t.Cleanup(func() {
		loadConfigFile = origLoad
		newDeployClient = origClient
		newSelector = origSelector
		confirmDeploy = origConfirm
		nowFunc = origNow
		writeDeployRecord = origWrite
	})

	loadConfigFile = func(string) (*config.Config, error) {
		return &config.Config{BaseURL: "https://pc.example.com:9440/api", Username: "admin", Password: "secret"}, nil
	}
	newDeployClient = func(*config.Config) prismAPI { return api }
	newSelector = func() ui.Selector { return sel }
	confirmDeploy = func(context.Context, string, string) (bool, error) { return true, nil }
	nowFunc = func() time.Time { return time.Date(2025, 10, 7, 14, 30, 0, 0, time.UTC) }

	var written []deploy.Record
	writeDeployRecord = func(dir string, rec *deploy.Record, now time.Time) (string, error) {
		written = append(written, *rec)
		return fmt.Sprintf("%s/deployment_%s_%s.json", dir, rec.VMName, now.Format("20060102_150405")), nil
	}
	return &written
}

func TestDeploy_DryRunSendsNothing(t *testing.T) {
	api := inventoryAPI()
	records := stubDeploy(t, api, &cannedSelector{index: 0})

	err := Deploy(context.Background(), DeployOptions{
		ImageName:  "win2022-base",
		SubnetName: "prod-vlan120",
		DryRun:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, api.createCalls)
	assert.Empty(t, *records)
}

func TestDeploy_RequiresDoIt(t *testing.T) {
	api := inventoryAPI()
	stubDeploy(t, api, &cannedSelector{index: 0})

	err := Deploy(context.Background(), DeployOptions{
		ImageName:  "win2022-base",
		SubnetName: "prod-vlan120",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, api.createCalls)
}

func TestDeploy_CreatesVMAndWritesRecord(t *testing.T) {
	api := inventoryAPI()
	records := stubDeploy(t, api, &cannedSelector{index: 0})

	err := Deploy(context.Background(), DeployOptions{
		Name:       "app-server-01",
		ImageName:  "win2022-base",
		SubnetName: "prod-vlan120",
		DoIt:       true,
		Yes:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, api.createCalls)
	require.NotNil(t, api.lastRequest)
	assert.Equal(t, "app-server-01", api.lastRequest.Name)
	assert.Equal(t, "img-1", api.lastRequest.Disks[0].DataSourceReference.ExtID)
	assert.Equal(t, "net-1", api.lastRequest.Nics[0].NetworkInfo.Subnet.ExtID)

	require.Len(t, *records, 1)
	rec := (*records)[0]
	assert.Equal(t, "app-server-01", rec.VMName)
	assert.Equal(t, "win2022-base", rec.ImageUsed)
	assert.Equal(t, "prod-vlan120", rec.NetworkUsed)
	assert.JSONEq(t, `{"data":{"extId":"task-1"}}`, string(rec.APIResponse))
}

func TestDeploy_DefaultNameUsesTimestamp(t *testing.T) {
	api := inventoryAPI()
	stubDeploy(t, api, &cannedSelector{index: 0})

	err := Deploy(context.Background(), DeployOptions{
		ImageName:  "win2022-base",
		SubnetName: "prod-vlan120",
		DoIt:       true,
		Yes:        true,
	})

	require.NoError(t, err)
	require.NotNil(t, api.lastRequest)
	assert.Equal(t, "Windows-VM-20251007-143000", api.lastRequest.Name)
}

func TestDeploy_FlagNamesBypassSelector(t *testing.T) {
	api := inventoryAPI()
	sel := &cannedSelector{index: 0}
	stubDeploy(t, api, sel)

	err := Deploy(context.Background(), DeployOptions{
		ImageName:  "win2022-base",
		SubnetName: "prod-vlan120",
		DryRun:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, sel.calls)
}

func TestDeploy_InteractiveSelection(t *testing.T) {
	api := inventoryAPI()
	sel := &cannedSelector{index: 1}
	stubDeploy(t, api, sel)

	err := Deploy(context.Background(), DeployOptions{DoIt: true, Yes: true})

	require.NoError(t, err)
	assert.Equal(t, 2, sel.calls)
	require.NotNil(t, api.lastRequest)
	assert.Equal(t, "img-2", api.lastRequest.Disks[0].DataSourceReference.ExtID)
	assert.Equal(t, "net-2", api.lastRequest.Nics[0].NetworkInfo.Subnet.ExtID)
}

func TestDeploy_SelectionAbortExitsCleanly(t *testing.T) {
	api := inventoryAPI()
	stubDeploy(t, api, &cannedSelector{err: ui.ErrCanceled})

	err := Deploy(context.Background(), DeployOptions{DoIt: true, Yes: true})

	require.NoError(t, err)
	assert.Equal(t, 0, api.createCalls)
}

func TestDeploy_ConfirmAbortExitsCleanly(t *testing.T) {
	api := inventoryAPI()
	stubDeploy(t, api, &cannedSelector{index: 0})
	confirmDeploy = func(context.Context, string, string) (bool, error) { return false, ui.ErrCanceled }

	err := Deploy(context.Background(), DeployOptions{
		ImageName:  "win2022-base",
		SubnetName: "prod-vlan120",
		DoIt:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, api.createCalls)
}

func TestDeploy_ConfirmDeclinedSendsNothing(t *testing.T) {
	api := inventoryAPI()
	stubDeploy(t, api, &cannedSelector{index: 0})
	confirmDeploy = func(context.Context, string, string) (bool, error) { return false, nil }

	err := Deploy(context.Background(), DeployOptions{
		ImageName:  "win2022-base",
		SubnetName: "prod-vlan120",
		DoIt:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, api.createCalls)
}

func TestDeploy_ConfigFailureBeforeNetwork(t *testing.T) {
	api := inventoryAPI()
	api.pingErr = errors.New("should not be reached")
	stubDeploy(t, api, &cannedSelector{index: 0})
	loadConfigFile = func(string) (*config.Config, error) {
		return nil, errors.New("missing required configuration keys: password")
	}

	err := Deploy(context.Background(), DeployOptions{DryRun: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
	assert.Contains(t, err.Error(), "password")
}

func TestDeploy_PingFailureIsFatal(t *testing.T) {
	api := inventoryAPI()
	api.pingErr = errors.New("connection refused")
	stubDeploy(t, api, &cannedSelector{index: 0})

	err := Deploy(context.Background(), DeployOptions{DryRun: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach Prism Central")
	assert.Equal(t, 1, api.pingCalls, "connectivity check must not be retried")
	assert.Equal(t, 0, api.createCalls)
}

func TestDeploy_ListFailureIsFatalWithoutRetry(t *testing.T) {
	api := inventoryAPI()
	api.imagesErr = &prism.APIError{Method: "GET", URL: "https://pc/api", StatusCode: 503}
	stubDeploy(t, api, &cannedSelector{index: 0})

	err := Deploy(context.Background(), DeployOptions{DryRun: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list images")
	assert.Equal(t, 1, api.imagesCalls, "inventory read must not be retried")
	assert.Equal(t, 0, api.createCalls)
}

func TestDeploy_EmptyImageInventory(t *testing.T) {
	api := inventoryAPI()
	api.images = nil
	stubDeploy(t, api, &cannedSelector{index: 0})

	err := Deploy(context.Background(), DeployOptions{DryRun: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no disk images available")
}

func TestDeploy_UnknownImageName(t *testing.T) {
	api := inventoryAPI()
	stubDeploy(t, api, &cannedSelector{index: 0})

	err := Deploy(context.Background(), DeployOptions{
		ImageName:  "does-not-exist",
		SubnetName: "prod-vlan120",
		DryRun:     true,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `image "does-not-exist" not found`)
}

func TestDeploy_CreateFailureSurfaced(t *testing.T) {
	api := inventoryAPI()
	api.createErr = errors.New("422 VALIDATION_ERROR")
	records := stubDeploy(t, api, &cannedSelector{index: 0})

	err := Deploy(context.Background(), DeployOptions{
		ImageName:  "win2022-base",
		SubnetName: "prod-vlan120",
		DoIt:       true,
		Yes:        true,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create VM")
	assert.Empty(t, *records)
}
