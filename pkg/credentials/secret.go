// Package credentials loads storage client parameters from a Kubernetes
// Secret laid out the way the Scality COSI driver expects it.
package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
	"github.com/scality/s3control-cli/pkg/util"
)

// Keys of the object storage provider Secret.
const (
	KeyAccessKeyID     = "COSI_DRIVER_OSP_ACCESS_KEY_ID"
	KeySecretAccessKey = "COSI_DRIVER_OSP_SECRET_ACCESS_KEY"
	KeyEndpoint        = "COSI_DRIVER_OSP_ENDPOINT"
	KeyRegion          = "COSI_DRIVER_OSP_REGION"
	KeyIAMEndpoint     = "COSI_DRIVER_OSP_IAM_ENDPOINT"
	KeyTLSCert         = "COSI_DRIVER_OSP_TLS_CERT_SECRET_NAME"

	namespaceEnv     = "POD_NAMESPACE"
	defaultNamespace = "default"
)

// NewKubernetesClient builds a clientset from kubeconfig, or from the
// in-cluster configuration when kubeconfig is empty.
var NewKubernetesClient = func(kubeconfig string) (kubernetes.Interface, error) {
	restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load Kubernetes configuration: %w", err)
	}
	return kubernetes.NewForConfig(restConfig)
}

// ParseSecretReference splits a "namespace/name" reference. A bare name is
// looked up in $POD_NAMESPACE, or in the default namespace.
func ParseSecretReference(ref string) (namespace, name string, err error) {
	namespace, name, found := strings.Cut(ref, "/")
	if !found {
		name = namespace
		namespace = os.Getenv(namespaceEnv)
		if namespace == "" {
			namespace = defaultNamespace
		}
	}
	if namespace == "" || name == "" || strings.Contains(name, "/") {
		return "", "", status.Errorf(codes.InvalidArgument, "invalid secret reference %q, expected namespace/name", ref)
	}
	return namespace, name, nil
}

// Load reads the storage client parameters from the Secret designated by ref.
func Load(ctx context.Context, kubeconfig, ref string) (*util.StorageClientParameters, error) {
	namespace, name, err := ParseSecretReference(ref)
	if err != nil {
		return nil, err
	}

	clientset, err := NewKubernetesClient(kubeconfig)
	if err != nil {
		return nil, err
	}
	return FromSecret(ctx, clientset, namespace, name)
}

// FromSecret fetches namespace/name and extracts the storage client parameters.
func FromSecret(ctx context.Context, clientset kubernetes.Interface, namespace, name string) (*util.StorageClientParameters, error) {
	klog.V(constants.LvlDebug).InfoS("Fetching secret", "secretName", name, "namespace", namespace)
	secret, err := clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object store user secret %s/%s: %w", namespace, name, err)
	}

	params, err := FetchParameters(secret.Data)
	if err != nil {
		return nil, fmt.Errorf("secret %s/%s: %w", namespace, name, err)
	}
	klog.V(constants.LvlEvent).InfoS("Credentials loaded from secret", "secretName", name, "namespace", namespace, "endpoint", params.Endpoint)
	return params, nil
}

// FetchParameters extracts the storage client parameters from secret data.
func FetchParameters(secretData map[string][]byte) (*util.StorageClientParameters, error) {
	accessKey := string(secretData[KeyAccessKeyID])
	secretKey := string(secretData[KeySecretAccessKey])
	endpoint := string(secretData[KeyEndpoint])
	region := string(secretData[KeyRegion])

	if endpoint == "" || accessKey == "" || secretKey == "" || region == "" {
		klog.V(constants.LvlDebug).InfoS("Missing required S3 parameters", "accessKey", accessKey != "", "secretKey", secretKey != "", "endpoint", endpoint != "", "region", region != "")
		return nil, status.Error(codes.InvalidArgument, "endpoint, accessKeyID, secretKey and region are required")
	}

	var tlsCert []byte
	if cert, exists := secretData[KeyTLSCert]; exists {
		tlsCert = cert
	} else {
		klog.V(constants.LvlTrace).InfoS("TLS certificate is not provided, proceeding without it")
	}

	return &util.StorageClientParameters{
		AccessKeyID:     accessKey,
		SecretAccessKey: secretKey,
		Endpoint:        endpoint,
		Region:          region,
		IAMEndpoint:     string(secretData[KeyIAMEndpoint]),
		TLSCert:         tlsCert,
	}, nil
}
