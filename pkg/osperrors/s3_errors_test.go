package osperrors_test

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc/codes"

	"github.com/scality/s3control-cli/pkg/osperrors"
)

var _ = Describe("S3 Error Translation", func() {
	Describe("TranslateS3Error", func() {
		It("should translate a modeled NotFound error", func() {
			Expect(osperrors.TranslateS3Error("HeadObject", "manifest.csv", &types.NotFound{})).To(Equal(codes.NotFound))
		})

		It("should translate NoSuchKey", func() {
			Expect(osperrors.TranslateS3Error("HeadObject", "manifest.csv", &types.NoSuchKey{})).To(Equal(codes.NotFound))
		})

		It("should translate Forbidden", func() {
			err := &mockAPIError{code: "Forbidden", message: "Forbidden"}
			Expect(osperrors.TranslateS3Error("HeadObject", "manifest.csv", err)).To(Equal(codes.PermissionDenied))
		})

		It("should handle non-API errors", func() {
			Expect(osperrors.TranslateS3Error("HeadObject", "manifest.csv", errors.New("boom"))).To(Equal(codes.Internal))
		})
	})

	Describe("S3ErrorTable", func() {
		It("should contain all expected error codes", func() {
			for _, code := range []string{"NoSuchBucket", "NoSuchKey", "NotFound", "AccessDenied", "SlowDown"} {
				Expect(osperrors.S3ErrorTable).To(HaveKey(code))
			}
		})
	})
})
