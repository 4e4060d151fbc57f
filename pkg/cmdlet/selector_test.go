package cmdlet_test

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/aws-sdk-go-v2/service/s3control/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scality/s3control-cli/pkg/cmdlet"
)

var _ = Describe("Selector", func() {
	DescribeTable("ParseSelector",
		func(directive string, kind cmdlet.SelectionKind, path []string, param string) {
			sel, err := cmdlet.ParseSelector(directive)
			Expect(err).NotTo(HaveOccurred())
			Expect(sel.Kind).To(Equal(kind))
			Expect(sel.Path).To(Equal(path))
			Expect(sel.Param).To(Equal(param))
		},
		Entry("empty selects the default field", "", cmdlet.SelectDefault, nil, ""),
		Entry("star selects the whole response", "*", cmdlet.SelectWhole, nil, ""),
		Entry("caret echoes a parameter", "^account-id", cmdlet.SelectParameter, nil, "account-id"),
		Entry("a field name", "Jobs", cmdlet.SelectField, []string{"Jobs"}, ""),
		Entry("a nested path", "Job.Status", cmdlet.SelectField, []string{"Job", "Status"}, ""),
	)

	DescribeTable("malformed directives",
		func(directive string) {
			_, err := cmdlet.ParseSelector(directive)
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&cmdlet.ValidationError{}))
		},
		Entry("bare caret", "^"),
		Entry("caret with an invalid name", "^Account Id"),
		Entry("empty path segment", "Job..Status"),
		Entry("leading digit", "1Jobs"),
		Entry("trailing dot", "Jobs."),
		Entry("punctuation", "Jobs[0]"),
	)

	Describe("Project", func() {
		var out *s3control.ListJobsOutput

		BeforeEach(func() {
			out = &s3control.ListJobsOutput{
				Jobs: []types.JobListDescriptor{
					{JobId: aws.String("job-1"), Status: types.JobStatusActive},
					{JobId: aws.String("job-2"), Status: types.JobStatusComplete},
				},
				NextToken: aws.String("abc"),
			}
		})

		It("should return the default field", func() {
			sel, _ := cmdlet.ParseSelector("")
			Expect(cmdlet.Project(out, sel, "Jobs", nil)).To(Equal(out.Jobs))
		})

		It("should return nothing when the operation has no default field", func() {
			sel, _ := cmdlet.ParseSelector("")
			Expect(cmdlet.Project(out, sel, "", nil)).To(BeNil())
		})

		It("should return the whole response", func() {
			sel, _ := cmdlet.ParseSelector("*")
			Expect(cmdlet.Project(out, sel, "Jobs", nil)).To(BeIdenticalTo(out))
		})

		It("should match field names case-insensitively", func() {
			sel, _ := cmdlet.ParseSelector("nexttoken")
			Expect(cmdlet.Project(out, sel, "Jobs", nil)).To(Equal("abc"))
		})

		It("should map a path over slice elements", func() {
			sel, _ := cmdlet.ParseSelector("Jobs.JobId")
			Expect(cmdlet.Project(out, sel, "Jobs", nil)).To(Equal([]any{"job-1", "job-2"}))
		})

		It("should return nil for unset pointers", func() {
			sel, _ := cmdlet.ParseSelector("NextToken")
			Expect(cmdlet.Project(&s3control.ListJobsOutput{}, sel, "Jobs", nil)).To(BeNil())
		})

		It("should echo a supplied parameter", func() {
			ps, err := cmdlet.NewParameterSet(parse("--account-id=123456789012"), testParams, nil)
			Expect(err).NotTo(HaveOccurred())

			sel, _ := cmdlet.ParseSelector("^account-id")
			Expect(cmdlet.Project(out, sel, "Jobs", ps)).To(Equal("123456789012"))
		})
	})
})
