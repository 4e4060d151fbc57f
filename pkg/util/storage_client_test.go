package util_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/scality/s3control-cli/pkg/util"
)

var _ = Describe("StorageClientParameters", func() {
	Context("NewStorageClientParameters", func() {
		It("should initialize default parameters", func() {
			params := util.NewStorageClientParameters()

			Expect(params.Region).To(Equal(util.DefaultRegion))
			Expect(params.Debug).To(BeFalse())
			Expect(params.NoRetry).To(BeFalse())
			Expect(params.AccessKeyID).To(BeEmpty())
			Expect(params.SecretAccessKey).To(BeEmpty())
			Expect(params.Endpoint).To(BeEmpty())
			Expect(params.TLSCert).To(BeNil())
		})
	})

	Context("Validate", func() {
		var params util.StorageClientParameters

		BeforeEach(func() {
			params = *util.NewStorageClientParameters()
		})

		It("should validate successfully when all required fields are set", func() {
			params.AccessKeyID = "test-access-key"
			params.SecretAccessKey = "test-secret-key"
			params.Endpoint = "https://test-endpoint"

			Expect(params.Validate()).To(Succeed())
		})

		It("should accept an empty endpoint", func() {
			params.AccessKeyID = "test-access-key"
			params.SecretAccessKey = "test-secret-key"

			Expect(params.Validate()).To(Succeed())
		})

		It("should return error when AccessKeyID is missing", func() {
			params.SecretAccessKey = "test-secret-key"

			err := params.Validate()
			Expect(err).To(HaveOccurred())
			Expect(status.Code(err)).To(Equal(codes.InvalidArgument))
			Expect(err.Error()).To(ContainSubstring("accessKeyID is required"))
		})

		It("should return error when SecretAccessKey is missing", func() {
			params.AccessKeyID = "test-access-key"

			err := params.Validate()
			Expect(err).To(HaveOccurred())
			Expect(status.Code(err)).To(Equal(codes.InvalidArgument))
			Expect(err.Error()).To(ContainSubstring("secretAccessKey is required"))
		})

		It("should return error when Region is empty", func() {
			params.AccessKeyID = "test-access-key"
			params.SecretAccessKey = "test-secret-key"
			params.Region = ""

			err := params.Validate()
			Expect(status.Code(err)).To(Equal(codes.InvalidArgument))
			Expect(err.Error()).To(ContainSubstring("region is required"))
		})
	})

	Context("service endpoints", func() {
		It("should fall back to the storage endpoint", func() {
			params := util.StorageClientParameters{Endpoint: "https://s3.example.com"}
			Expect(params.IAMBaseEndpoint()).To(Equal("https://s3.example.com"))

			params.IAMEndpoint = "https://iam.example.com"
			Expect(params.IAMBaseEndpoint()).To(Equal("https://iam.example.com"))
		})

		It("should resolve the S3 endpoint the same way", func() {
			params := util.StorageClientParameters{Endpoint: "https://s3.example.com"}
			Expect(params.S3BaseEndpoint()).To(Equal("https://s3.example.com"))

			params.S3Endpoint = "https://objects.example.com"
			Expect(params.S3BaseEndpoint()).To(Equal("https://objects.example.com"))
		})
	})
})

var _ = Describe("HTTP client", func() {
	It("should configure TLS when certData is provided", func() {
		transport := &http.Transport{}
		util.ConfigureTLSTransport([]byte("fake-cert-data"))(transport)

		Expect(transport.TLSClientConfig).NotTo(BeNil())
		Expect(transport.TLSClientConfig.InsecureSkipVerify).To(BeFalse())
		Expect(transport.TLSClientConfig.MinVersion).To(Equal(uint16(tls.VersionTLS12)))
		Expect(transport.TLSClientConfig.RootCAs).NotTo(BeNil())
		Expect(transport.Proxy).NotTo(BeNil())
	})

	It("should use the system pool when no certData is provided", func() {
		transport := &http.Transport{}
		util.ConfigureTLSTransport(nil)(transport)

		Expect(transport.TLSClientConfig.RootCAs).To(BeNil())
	})

	It("should only trust the given certificate for https endpoints", func() {
		cert := selfSignedPEM()

		plain := util.NewHTTPClient("http://localhost:8000", cert)
		Expect(plain.GetTimeout()).To(Equal(util.DefaultRequestTimeout))
		Expect(plain.GetTransport().TLSClientConfig.RootCAs).To(BeNil())

		secure := util.NewHTTPClient("https://s3.example.com", cert)
		Expect(secure.GetTimeout()).To(Equal(util.DefaultRequestTimeout))
		Expect(secure.GetTransport().TLSClientConfig.RootCAs).NotTo(BeNil())
	})
})

// selfSignedPEM returns a throwaway CA certificate in PEM form.
func selfSignedPEM() []byte {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	Expect(err).NotTo(HaveOccurred())
	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "s3ctl test CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	Expect(err).NotTo(HaveOccurred())
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}
