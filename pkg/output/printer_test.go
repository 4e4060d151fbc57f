package output_test

import (
	"bytes"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/aws-sdk-go-v2/service/s3control/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scality/s3control-cli/pkg/output"
)

var _ = Describe("Normalize", func() {
	It("should drop nil fields and response metadata", func() {
		out := &s3control.CreateAccessPointOutput{AccessPointArn: aws.String("arn:ap")}
		Expect(output.Normalize(out)).To(Equal(map[string]any{"AccessPointArn": "arn:ap"}))
	})

	It("should render enums as strings and times as RFC 3339", func() {
		created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		job := types.JobListDescriptor{
			JobId:        aws.String("job-1"),
			Status:       types.JobStatusActive,
			CreationTime: &created,
		}
		Expect(output.Normalize(job)).To(Equal(map[string]any{
			"JobId":        "job-1",
			"Status":       "Active",
			"Priority":     int32(0),
			"CreationTime": "2024-05-01T10:00:00Z",
		}))
	})

	It("should keep false and zero scalars", func() {
		entry := types.ListStorageLensConfigurationEntry{Id: aws.String("dashboard"), IsEnabled: false}
		Expect(output.Normalize(entry)).To(Equal(map[string]any{
			"Id":        "dashboard",
			"IsEnabled": false,
		}))
	})

	It("should return nil for nil input", func() {
		Expect(output.Normalize(nil)).To(BeNil())
		var out *s3control.DescribeJobOutput
		Expect(output.Normalize(out)).To(BeNil())
	})
})

var _ = Describe("Printer", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("should reject unknown formats", func() {
		_, err := output.NewPrinter(buf, "xml", false)
		Expect(err).To(MatchError(ContainSubstring(`unknown output format "xml"`)))
	})

	It("should print nothing for nil values", func() {
		p, err := output.NewPrinter(buf, "json", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Print(nil)).To(Succeed())
		Expect(p.Flush()).To(Succeed())
		Expect(buf.String()).To(BeEmpty())
	})

	It("should print each element of a list as its own JSON document", func() {
		p, err := output.NewPrinter(buf, "JSON", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Print([]types.AccessPoint{{Name: aws.String("ap1")}, {Name: aws.String("ap2")}})).To(Succeed())
		Expect(buf.String()).To(Equal("{\n  \"Name\": \"ap1\"\n}\n{\n  \"Name\": \"ap2\"\n}\n"))
	})

	It("should print a disabled dashboard as disabled", func() {
		p, err := output.NewPrinter(buf, "json", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Print([]types.ListStorageLensConfigurationEntry{{Id: aws.String("dashboard")}})).To(Succeed())
		Expect(buf.String()).To(Equal("{\n  \"Id\": \"dashboard\",\n  \"IsEnabled\": false\n}\n"))
	})

	It("should separate YAML documents", func() {
		p, err := output.NewPrinter(buf, "yaml", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Print([]types.AccessPoint{{Name: aws.String("ap1")}})).To(Succeed())
		Expect(p.Print([]types.AccessPoint{{Name: aws.String("ap2")}})).To(Succeed())
		Expect(buf.String()).To(Equal("Name: ap1\n---\nName: ap2\n"))
	})

	It("should print scalars verbatim in text mode", func() {
		p, err := output.NewPrinter(buf, "text", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Print(aws.String("arn:aws:s3:us-east-1:123456789012:accesspoint/ap1"))).To(Succeed())
		Expect(p.Print(map[string]any{"a": 1})).To(Succeed())
		Expect(buf.String()).To(Equal("arn:aws:s3:us-east-1:123456789012:accesspoint/ap1\n{\"a\":1}\n"))
	})

	It("should buffer table rows until Flush", func() {
		p, err := output.NewPrinter(buf, "table", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Print([]types.AccessPoint{
			{Name: aws.String("ap1"), Bucket: aws.String("logs")},
			{Name: aws.String("ap2")},
		})).To(Succeed())
		Expect(buf.String()).To(BeEmpty())

		Expect(p.Flush()).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("BUCKET"))
		Expect(buf.String()).To(ContainSubstring("NAME"))
		Expect(buf.String()).To(ContainSubstring("ap1"))
		Expect(buf.String()).To(ContainSubstring("logs"))
		Expect(buf.String()).To(ContainSubstring("ap2"))
	})

	It("should use a single Value column for scalars", func() {
		p, err := output.NewPrinter(buf, "table", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Print("job-1")).To(Succeed())
		Expect(p.Flush()).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("VALUE"))
		Expect(buf.String()).To(ContainSubstring("job-1"))
	})
})
