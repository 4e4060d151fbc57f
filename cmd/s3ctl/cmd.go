/*
Copyright 2024 Scality, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	iamclient "github.com/scality/s3control-cli/pkg/clients/iam"
	s3client "github.com/scality/s3control-cli/pkg/clients/s3"
	s3controlclient "github.com/scality/s3control-cli/pkg/clients/s3control"
	"github.com/scality/s3control-cli/pkg/cmdlet"
	"github.com/scality/s3control-cli/pkg/commands"
	"github.com/scality/s3control-cli/pkg/constants"
	"github.com/scality/s3control-cli/pkg/credentials"
	"github.com/scality/s3control-cli/pkg/metrics"
	"github.com/scality/s3control-cli/pkg/output"
	"github.com/scality/s3control-cli/pkg/tracing"
	"github.com/scality/s3control-cli/pkg/util"
)

const (
	serviceName          = "s3ctl"
	configDir            = ".s3ctl"
	envPrefix            = "S3CTL"
	defaultMetricsPrefix = "s3ctl"
	shutdownTimeout      = 5 * time.Second
)

// Configuration keys, shared by flags, the config file and S3CTL_* variables.
const (
	keyConfig            = "config"
	keyEndpoint          = "endpoint"
	keyS3Endpoint        = "s3-endpoint"
	keyIAMEndpoint       = "iam-endpoint"
	keyRegion            = "region"
	keyAccessKeyID       = "access-key-id"
	keySecretAccessKey   = "secret-access-key"
	keyTLSCertFile       = "tls-cert-file"
	keyAccountID         = "account-id"
	keyResolveAccountID  = "resolve-account-id"
	keyCredentialsSecret = "credentials-secret"
	keyKubeconfig        = "kubeconfig"
	keyOutput            = "output"
	keyDebug             = "debug"
	keyNoRetry           = "no-retry"
	keyMetricsTextfile   = "metrics-textfile"
	keyTraceExporter     = "trace-exporter"
	keyOTLPEndpoint      = "otlp-endpoint"
)

var version = "dev"

func init() {
	klog.InitFlags(nil)
	if err := flag.Set("logtostderr", "true"); err != nil {
		klog.Exitf("Failed to set logtostderr flag: %v", err)
	}
}

// session holds what the root command sets up and run tears down.
type session struct {
	viper    *viper.Viper
	env      *commands.Env
	registry *prometheus.Registry
	shutdown tracing.ShutdownFunc
}

func run(ctx context.Context, args []string) error {
	s := &session{
		viper:    viper.New(),
		env:      &commands.Env{},
		registry: prometheus.NewRegistry(),
	}

	root := s.newRootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)

	return errors.Join(err, s.close())
}

func (s *session) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     serviceName,
		Short:   "S3 Control cmdlets",
		Long:    `s3ctl manages S3 Control resources: access points, access grants, Outposts buckets, batch jobs, Multi-Region Access Points and Storage Lens.`,
		Version: version,

		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.setup,
	}

	pf := root.PersistentFlags()
	pf.String(keyConfig, "", "config file (default ${HOME}/"+configDir+"/config.yml)")
	pf.String(keyEndpoint, "", "S3 Control endpoint URL (default: the AWS regional endpoint)")
	pf.String(keyS3Endpoint, "", "S3 endpoint URL used to read batch job manifests (default: --endpoint)")
	pf.String(keyIAMEndpoint, "", "IAM endpoint URL (default: --endpoint)")
	pf.String(keyRegion, util.DefaultRegion, "signing region")
	pf.String(keyAccessKeyID, "", "access key id")
	pf.String(keySecretAccessKey, "", "secret access key")
	pf.String(keyTLSCertFile, "", "PEM bundle of CA certificates trusted for https endpoints")
	pf.Bool(keyResolveAccountID, false, "look the account id up from the caller's IAM identity when --account-id is not given")
	pf.String(keyCredentialsSecret, "", "read credentials from the Kubernetes Secret namespace/name")
	pf.String(keyKubeconfig, "", "kubeconfig used with --credentials-secret (default: in-cluster configuration)")
	pf.StringP(keyOutput, "o", string(output.FormatJSON), "output format: json, yaml, table or text")
	pf.Bool(keyDebug, false, "log SDK requests and responses")
	pf.Bool(keyNoRetry, false, "disable SDK retries")
	pf.String(keyMetricsTextfile, "", "write Prometheus metrics to this file on exit")
	pf.String(keyTraceExporter, tracing.ExporterNone, "trace exporter: none, stdout or otlp")
	pf.String(keyOTLPEndpoint, "", "OTLP/HTTP traces endpoint URL")
	pf.AddGoFlagSet(flag.CommandLine)

	root.AddCommand(commands.NewCommands(s.env)...)

	root.AddCommand(commands.NewConfigCommand(s.viper, configDir))

	return root
}

// needsClients reports whether cmd calls the storage service. Help,
// completion and config commands do not.
func needsClients(cmd *cobra.Command) bool {
	return cmd.Annotations[commands.CmdletAnnotation] != ""
}

// setup reads the configuration and prepares the clients, metrics and
// tracing used by the command about to run.
func (s *session) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := s.loadConfig(cmd); err != nil {
		return err
	}
	v := s.viper

	klog.V(constants.LvlDefault).InfoS("s3ctl configuration",
		"configFile", v.ConfigFileUsed(),
		"endpoint", v.GetString(keyEndpoint),
		"region", v.GetString(keyRegion),
		"output", v.GetString(keyOutput),
		"traceExporter", v.GetString(keyTraceExporter),
	)

	if !needsClients(cmd) {
		return nil
	}

	if _, err := output.NewPrinter(io.Discard, v.GetString(keyOutput), false); err != nil {
		return err
	}

	if v.GetString(keyMetricsTextfile) != "" {
		metrics.InitializeMetrics(defaultMetricsPrefix, s.registry)
	}

	shutdown, err := tracing.Setup(ctx, tracing.Config{
		Exporter:     v.GetString(keyTraceExporter),
		OTLPEndpoint: v.GetString(keyOTLPEndpoint),
		ServiceName:  serviceName,
		Version:      version,
	})
	if err != nil {
		return err
	}
	s.shutdown = shutdown

	params, err := s.clientParameters(ctx)
	if err != nil {
		return err
	}

	client, err := s3controlclient.InitS3ControlClient(ctx, *params)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 Control client: %w", err)
	}

	s.env.S3Control = client.S3ControlService
	s.env.Endpoint = client.Endpoint
	s.env.IAM = lazy(func(ctx context.Context) (*iamclient.IAMClient, error) {
		return iamclient.InitIAMClient(ctx, *params)
	})
	s.env.S3 = lazy(func(ctx context.Context) (*s3client.S3Client, error) {
		return s3client.InitS3Client(ctx, *params)
	})
	s.env.Confirmer = cmdlet.NewPromptConfirmer()
	s.env.Output = v.GetString(keyOutput)
	s.env.Color = isatty.IsTerminal(os.Stdout.Fd())
	s.env.AccountID = v.GetString(keyAccountID)
	s.env.ResolveAccountID = v.GetBool(keyResolveAccountID)
	return nil
}

// loadConfig binds the persistent flags and reads the config file, either
// --config or config.yml in the working directory's or home's .s3ctl.
func (s *session) loadConfig(cmd *cobra.Command) error {
	v := s.viper
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file := v.GetString(keyConfig); file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(configDir)
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, configDir))
		v.SetConfigName(commands.ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// clientParameters assembles the storage client parameters. Settings given
// explicitly override those read from --credentials-secret.
func (s *session) clientParameters(ctx context.Context) (*util.StorageClientParameters, error) {
	v := s.viper
	params := util.NewStorageClientParameters()

	if ref := v.GetString(keyCredentialsSecret); ref != "" {
		fromSecret, err := credentials.Load(ctx, v.GetString(keyKubeconfig), ref)
		if err != nil {
			return nil, err
		}
		params = fromSecret
	}

	override := func(dst *string, key string) {
		if v.IsSet(key) && v.GetString(key) != "" {
			*dst = v.GetString(key)
		}
	}
	override(&params.Endpoint, keyEndpoint)
	override(&params.S3Endpoint, keyS3Endpoint)
	override(&params.IAMEndpoint, keyIAMEndpoint)
	override(&params.Region, keyRegion)
	override(&params.AccessKeyID, keyAccessKeyID)
	override(&params.SecretAccessKey, keySecretAccessKey)

	if file := v.GetString(keyTLSCertFile); file != "" {
		cert, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read TLS certificate: %w", err)
		}
		params.TLSCert = cert
	}
	params.Debug = v.GetBool(keyDebug)
	params.NoRetry = v.GetBool(keyNoRetry)

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// close flushes traces and writes the metrics textfile.
func (s *session) close() error {
	var errs []error
	if s.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.shutdown(ctx); err != nil {
			klog.ErrorS(err, "Failed to flush traces")
		}
	}
	if path := s.viper.GetString(keyMetricsTextfile); path != "" && metrics.InvocationsTotal != nil {
		if err := metrics.WriteTextfile(path, s.registry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}

// lazy creates a client on first use and returns the same one afterwards.
func lazy[T any](create func(context.Context) (T, error)) func(context.Context) (T, error) {
	var (
		once   sync.Once
		client T
		err    error
	)
	return func(ctx context.Context) (T, error) {
		once.Do(func() {
			client, err = create(ctx)
		})
		return client, err
	}
}
