package util

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"strings"
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"k8s.io/klog/v2"
)

// Constants for storage client configuration
const (
	DefaultRegion         = "us-east-1"
	DefaultRequestTimeout = 15 * time.Second
)

// StorageClientParameters holds configuration for S3 Control, S3 and IAM clients.
type StorageClientParameters struct {
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	Region          string
	IAMEndpoint     string // Optional if different from Endpoint
	S3Endpoint      string // Optional if different from Endpoint
	TLSCert         []byte // Optional field for TLS certificates
	Debug           bool   // Optional field for SDK wire logging
	NoRetry         bool
}

// NewStorageClientParameters initializes default storage client parameters.
func NewStorageClientParameters() *StorageClientParameters {
	return &StorageClientParameters{
		Region: DefaultRegion,
		Debug:  false,
	}
}

// Validate checks that all required fields are set. The endpoint may be
// empty, in which case the SDK resolves the regional AWS endpoint.
func (p *StorageClientParameters) Validate() error {
	if p.AccessKeyID == "" {
		return status.Error(codes.InvalidArgument, "accessKeyID is required")
	}
	if p.SecretAccessKey == "" {
		return status.Error(codes.InvalidArgument, "secretAccessKey is required")
	}
	if p.Region == "" {
		return status.Error(codes.InvalidArgument, "region is required")
	}
	return nil
}

// IAMBaseEndpoint returns the IAM endpoint, defaulting to the storage endpoint.
func (p *StorageClientParameters) IAMBaseEndpoint() string {
	if p.IAMEndpoint != "" {
		return p.IAMEndpoint
	}
	return p.Endpoint
}

// S3BaseEndpoint returns the S3 endpoint, defaulting to the storage endpoint.
func (p *StorageClientParameters) S3BaseEndpoint() string {
	if p.S3Endpoint != "" {
		return p.S3Endpoint
	}
	return p.Endpoint
}

// NewHTTPClient returns the HTTP client shared by the SDK clients, trusting
// tlsCert when endpoint is served over https. It stays buildable so that the
// SDK can still apply AWS_CA_BUNDLE on top of it.
func NewHTTPClient(endpoint string, tlsCert []byte) *awshttp.BuildableClient {
	httpClient := awshttp.NewBuildableClient().WithTimeout(DefaultRequestTimeout)

	if strings.HasPrefix(endpoint, "https://") {
		httpClient = httpClient.WithTransportOptions(ConfigureTLSTransport(tlsCert))
	}
	return httpClient
}

// ConfigureTLSTransport returns a transport option enforcing TLS 1.2 and
// trusting certData in place of the system pool when given.
func ConfigureTLSTransport(certData []byte) func(*http.Transport) {
	return func(tr *http.Transport) {
		tlsSettings := &tls.Config{
			MinVersion: tls.VersionTLS12,
		}

		if len(certData) > 0 {
			caCertPool := x509.NewCertPool()
			if ok := caCertPool.AppendCertsFromPEM(certData); !ok {
				klog.Warning("Failed to append provided cert data to the certificate pool")
			}
			tlsSettings.RootCAs = caCertPool
		}

		tr.Proxy = http.ProxyFromEnvironment
		tr.TLSClientConfig = tlsSettings
	}
}
