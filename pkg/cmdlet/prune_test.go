package cmdlet_test

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/aws-sdk-go-v2/service/s3control/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scality/s3control-cli/pkg/cmdlet"
)

type ageFilter struct {
	DaysGreaterThan *int32
	DaysLessThan    *int32
}

type lensFilter struct {
	MatchAnyPrefix []string
	MatchObjectAge *ageFilter
}

type lensGroup struct {
	Name   *string
	Filter *lensFilter
}

type union interface{ isUnion() }

type unionMember struct{ Value lensFilter }

func (*unionMember) isUnion() {}

type lensRequest struct {
	AccountId *string
	Group     *lensGroup
	Generator union
	Tags      []lensGroup
	hidden    struct{}
}

type tagDeletion struct{ noSerde struct{} }

type jobOp struct {
	Lambda     *ageFilter
	DeleteTags *tagDeletion
}

type jobRequest struct{ Op *jobOp }

var _ = Describe("Prune", func() {
	It("should clear sub-objects whose fields are all unset, recursively", func() {
		req := &lensRequest{
			AccountId: aws.String("123456789012"),
			Group: &lensGroup{
				Filter: &lensFilter{MatchObjectAge: &ageFilter{}},
			},
		}

		empty := cmdlet.Prune(req)
		Expect(empty).To(BeFalse())
		Expect(req.AccountId).To(HaveValue(Equal("123456789012")))
		Expect(req.Group).To(BeNil())
	})

	It("should keep sub-objects with at least one supplied field", func() {
		req := &lensRequest{
			Group: &lensGroup{
				Filter: &lensFilter{MatchObjectAge: &ageFilter{DaysGreaterThan: aws.Int32(0)}},
			},
		}

		cmdlet.Prune(req)
		Expect(req.Group).NotTo(BeNil())
		Expect(req.Group.Name).To(BeNil())
		Expect(req.Group.Filter.MatchObjectAge.DaysGreaterThan).To(HaveValue(BeZero()))
	})

	It("should treat a supplied empty value as set", func() {
		req := &lensRequest{
			Group: &lensGroup{Name: aws.String(""), Filter: &lensFilter{MatchAnyPrefix: []string{}}},
		}

		cmdlet.Prune(req)
		Expect(req.Group).NotTo(BeNil())
		Expect(req.Group.Filter).NotTo(BeNil())
		Expect(req.Group.Filter.MatchAnyPrefix).To(BeEmpty())
	})

	It("should clear interfaces holding empty structures", func() {
		req := &lensRequest{Generator: &unionMember{}}
		cmdlet.Prune(req)
		Expect(req.Generator).To(BeNil())

		req = &lensRequest{Generator: &unionMember{Value: lensFilter{MatchAnyPrefix: []string{"logs/"}}}}
		cmdlet.Prune(req)
		Expect(req.Generator).NotTo(BeNil())
	})

	It("should prune slice elements in place without dropping them", func() {
		req := &lensRequest{Tags: []lensGroup{{Name: aws.String("a"), Filter: &lensFilter{}}}}
		cmdlet.Prune(req)
		Expect(req.Tags).To(HaveLen(1))
		Expect(req.Tags[0].Filter).To(BeNil())
	})

	It("should report an empty root without clearing it", func() {
		req := &lensRequest{Group: &lensGroup{}}
		Expect(cmdlet.Prune(req)).To(BeTrue())
		Expect(req).NotTo(BeNil())
		Expect(req.Group).To(BeNil())
	})

	It("should be idempotent", func() {
		req := &lensRequest{Group: &lensGroup{Filter: &lensFilter{MatchObjectAge: &ageFilter{}}}, Tags: []lensGroup{{}}}
		cmdlet.Prune(req)
		first := *req
		cmdlet.Prune(req)
		Expect(*req).To(Equal(first))
	})

	It("should keep marker structures that have no fields to set", func() {
		req := &jobRequest{Op: &jobOp{Lambda: &ageFilter{}, DeleteTags: &tagDeletion{}}}
		cmdlet.Prune(req)
		Expect(req.Op).NotTo(BeNil())
		Expect(req.Op.Lambda).To(BeNil())
		Expect(req.Op.DeleteTags).NotTo(BeNil())

		in := &s3control.CreateJobInput{
			Operation: &types.JobOperation{LambdaInvoke: &types.LambdaInvokeOperation{}},
		}
		cmdlet.Prune(in)
		Expect(in.Operation).To(BeNil())
	})

	It("should ignore values that are not pointers to structs", func() {
		Expect(cmdlet.Prune(nil)).To(BeFalse())
		Expect(cmdlet.Prune(lensRequest{})).To(BeFalse())
		s := "x"
		Expect(cmdlet.Prune(&s)).To(BeFalse())
	})

	It("should prune SDK requests", func() {
		in := &s3control.CreateJobInput{
			AccountId: aws.String("123456789012"),
			Priority:  aws.Int32(10),
			Operation: &types.JobOperation{
				LambdaInvoke:          &types.LambdaInvokeOperation{},
				S3DeleteObjectTagging: &types.S3DeleteObjectTaggingOperation{},
			},
			Manifest: &types.JobManifest{
				Location: &types.JobManifestLocation{ObjectArn: aws.String("arn:aws:s3:::manifests/list.csv")},
				Spec:     &types.JobManifestSpec{},
			},
		}

		cmdlet.Prune(in)
		Expect(in.Operation).NotTo(BeNil())
		Expect(in.Operation.LambdaInvoke).To(BeNil())
		Expect(in.Operation.S3DeleteObjectTagging).NotTo(BeNil())
		Expect(in.Manifest).NotTo(BeNil())
		Expect(in.Manifest.Spec).To(BeNil())
		Expect(in.Manifest.Location.ObjectArn).To(HaveValue(Equal("arn:aws:s3:::manifests/list.csv")))
		Expect(in.Priority).To(HaveValue(Equal(int32(10))))
	})

	It("should leave kept sub-objects untouched", func() {
		age := &ageFilter{}
		in := &lensRequest{Group: &lensGroup{Filter: &lensFilter{MatchObjectAge: age}}}

		Expect(cmdlet.Prune(in, age)).To(BeFalse())
		Expect(in.Group.Filter.MatchObjectAge).To(BeIdenticalTo(age))
	})

	It("should not descend into kept sub-objects", func() {
		filter := &lensFilter{MatchObjectAge: &ageFilter{}}
		in := &lensRequest{Group: &lensGroup{Filter: filter}}

		cmdlet.Prune(in, filter)
		Expect(in.Group.Filter.MatchObjectAge).To(Equal(&ageFilter{}))
	})

	It("should ignore nil and non-pointer keep entries", func() {
		in := &lensRequest{Group: &lensGroup{}}
		var none *lensGroup

		Expect(cmdlet.Prune(in, none, lensGroup{}, "x")).To(BeTrue())
		Expect(in.Group).To(BeNil())
	})

	It("should keep a report that is only switched off when asked to", func() {
		report := &types.JobReport{Enabled: false}
		in := &s3control.CreateJobInput{Report: report}
		cmdlet.Prune(in, report)
		Expect(in.Report).To(BeIdenticalTo(report))

		in = &s3control.CreateJobInput{Report: &types.JobReport{Enabled: false}}
		cmdlet.Prune(in)
		Expect(in.Report).To(BeNil())
	})
})
