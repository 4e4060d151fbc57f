package cmdlet_test

import (
	"errors"
	"fmt"
	"net"

	smithy "github.com/aws/smithy-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/scality/s3control-cli/pkg/cmdlet"
)

var _ = Describe("WrapCallError", func() {
	It("should add the endpoint to name resolution failures", func() {
		dnsErr := &net.DNSError{Err: "no such host", Name: "s3-control.example.invalid", IsNotFound: true}
		opErr := &smithy.OperationError{ServiceID: "S3 Control", OperationName: "ListJobs", Err: fmt.Errorf("send request: %w", dnsErr)}

		err := cmdlet.WrapCallError("ListJobs", "https://s3-control.example.invalid", opErr)

		var endpointErr *cmdlet.EndpointError
		Expect(errors.As(err, &endpointErr)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("https://s3-control.example.invalid"))
		Expect(err.Error()).To(ContainSubstring("ListJobs"))
		Expect(errors.Is(err, dnsErr)).To(BeTrue())
	})

	It("should add the endpoint to dial failures", func() {
		dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

		err := cmdlet.WrapCallError("CreateJob", "http://127.0.0.1:9", dialErr)
		Expect(err.Error()).To(ContainSubstring("http://127.0.0.1:9"))
	})

	It("should name the default endpoint when none was configured", func() {
		err := cmdlet.WrapCallError("ListJobs", "", &net.DNSError{Err: "no such host", Name: "x"})
		Expect(err.Error()).To(ContainSubstring("default endpoint"))
	})

	It("should propagate service errors unchanged", func() {
		apiErr := &smithy.GenericAPIError{Code: "NoSuchAccessPoint", Message: "The specified accesspoint does not exist"}

		err := cmdlet.WrapCallError("DeleteAccessPoint", "https://s3-control.example.com", apiErr)
		Expect(err).To(BeIdenticalTo(apiErr))
	})

	It("should pass nil through", func() {
		Expect(cmdlet.WrapCallError("ListJobs", "x", nil)).To(BeNil())
	})
})

var _ = Describe("status classification", func() {
	It("should classify validation errors as invalid arguments", func() {
		_, err := cmdlet.ParseSelector("Job..Status")
		Expect(status.Code(err)).To(Equal(codes.InvalidArgument))
	})

	It("should classify endpoint errors as unavailable", func() {
		err := cmdlet.WrapCallError("ListJobs", "", &net.DNSError{Err: "no such host", Name: "s3-control"})
		Expect(status.Code(err)).To(Equal(codes.Unavailable))
		Expect(err.Error()).To(ContainSubstring("default endpoint"))
	})
})
