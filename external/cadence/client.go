package cadence

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	"go.uber.org/cadence/.gen/go/cadence/workflowserviceclient"
	"go.uber.org/cadence/client"
	"go.uber.org/cadence/workflow"
	"go.uber.org/yarpc"
	"go.uber.org/yarpc/transport/tchannel"
)

const (
	ClientName     = "huddle-worker"
	CadenceService = "cadence-frontend"
)

var ErrIncompleteConfig = errors.New("cadence conn and domain are required")

// Config locates the cadence frontend and the domain lifecycle workflows run in
type Config struct {
	HostPort string
	Domain   string
}

// ConfigFromViper reads `cadence.conn` and `cadence.domain`
func ConfigFromViper() Config {
	return Config{
		HostPort: viper.GetString("cadence.conn"),
		Domain:   viper.GetString("cadence.domain"),
	}
}

func (c Config) validate() error {
	if c.HostPort == "" || c.Domain == "" {
		return ErrIncompleteConfig
	}
	return nil
}

// CadenceClient starts lifecycle workflows. It satisfies the workflow
// starter the expiry scheduler needs.
type CadenceClient struct {
	client client.Client
}

// BuildCadenceServiceClient opens a tchannel outbound to the frontend
func BuildCadenceServiceClient(hostPort string) (workflowserviceclient.Interface, error) {
	if hostPort == "" {
		return nil, ErrIncompleteConfig
	}

	ch, err := tchannel.NewChannelTransport(tchannel.ServiceName(ClientName))
	if err != nil {
		return nil, fmt.Errorf("setup tchannel: %w", err)
	}
	dispatcher := yarpc.NewDispatcher(yarpc.Config{
		Name: ClientName,
		Outbounds: yarpc.Outbounds{
			CadenceService: {Unary: ch.NewSingleOutbound(hostPort)},
		},
	})
	if err := dispatcher.Start(); err != nil {
		return nil, fmt.Errorf("start dispatcher: %w", err)
	}

	return workflowserviceclient.New(dispatcher.ClientConfig(CadenceService)), nil
}

// NewClient connects to the configured frontend. Payloads use the msgpack
// converter the expiry worker is started with.
func NewClient(cfg Config) (*CadenceClient, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	service, err := BuildCadenceServiceClient(cfg.HostPort)
	if err != nil {
		return nil, err
	}

	return &CadenceClient{
		client: client.NewClient(
			service,
			cfg.Domain,
			&client.Options{
				Identity:      ClientName,
				MetricsScope:  tally.NoopScope,
				DataConverter: NewMsgPackDataConverter(),
			},
		),
	}, nil
}

func (c *CadenceClient) StartWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (*workflow.Execution, error) {
	return c.client.StartWorkflow(ctx, options, workflow, args...)
}
