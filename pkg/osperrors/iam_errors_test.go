package osperrors_test

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc/codes"

	"github.com/scality/s3control-cli/pkg/osperrors"
)

var _ = Describe("IAM Error Translation", func() {
	It("should translate NoSuchEntity to NotFound", func() {
		err := fmt.Errorf("IAM user ghost does not exist: %w", &types.NoSuchEntityException{})
		Expect(osperrors.TranslateIAMError("GetUser", "ghost", err)).To(Equal(codes.NotFound))
	})

	It("should translate AccessDenied", func() {
		err := &mockAPIError{code: "AccessDenied", message: "not allowed"}
		Expect(osperrors.TranslateIAMError("GetUser", "alice", err)).To(Equal(codes.PermissionDenied))
	})

	It("should translate ServiceFailure", func() {
		Expect(osperrors.TranslateIAMError("GetUser", "alice", &types.ServiceFailureException{})).To(Equal(codes.Internal))
	})

	It("should translate LimitExceeded", func() {
		Expect(osperrors.TranslateIAMError("GetUser", "alice", &types.LimitExceededException{})).To(Equal(codes.ResourceExhausted))
	})
})
