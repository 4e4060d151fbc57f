package cmdlet_test

import (
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/service/s3control/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"

	"github.com/scality/s3control-cli/pkg/cmdlet"
)

var testParams = []cmdlet.Parameter{
	{Name: "account-id", Kind: cmdlet.KindString, Required: true},
	{Name: "name", Kind: cmdlet.KindString, Aliases: []string{"access-point-name"}},
	{Name: "max-results", Kind: cmdlet.KindInt32},
	{Name: "bytes", Kind: cmdlet.KindInt64},
	{Name: "enabled", Kind: cmdlet.KindBool},
	{Name: "prefixes", Kind: cmdlet.KindStringSlice, Required: true},
	{Name: "permission", Kind: cmdlet.KindString},
	{Name: "statuses", Kind: cmdlet.KindStringSlice},
	{Name: "tags", Kind: cmdlet.KindJSON},
}

func parse(args ...string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cmdlet.Register(fs, testParams...)
	Expect(fs.Parse(args)).To(Succeed())
	return fs
}

var _ = Describe("ParameterSet", func() {
	It("should return nil for parameters that were not supplied", func() {
		ps, err := cmdlet.NewParameterSet(parse(), testParams, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(ps.String("name")).To(BeNil())
		Expect(ps.Int32("max-results")).To(BeNil())
		Expect(ps.Int64("bytes")).To(BeNil())
		Expect(ps.Bool("enabled")).To(BeNil())
		Expect(ps.Strings("prefixes")).To(BeNil())
		Expect(cmdlet.Enum[types.Permission](ps, "permission")).To(BeEmpty())
	})

	It("should distinguish supplied empty and default values from absent ones", func() {
		ps, err := cmdlet.NewParameterSet(parse("--name=", "--max-results=0", "--enabled=false", "--prefixes="), testParams, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(ps.String("name")).To(HaveValue(BeEmpty()))
		Expect(ps.Int32("max-results")).To(HaveValue(BeZero()))
		Expect(ps.Bool("enabled")).To(HaveValue(BeFalse()))
		Expect(ps.Strings("prefixes")).NotTo(BeNil())
		Expect(ps.Strings("prefixes")).To(BeEmpty())
	})

	It("should pass numeric and enumerated values through unchanged", func() {
		ps, err := cmdlet.NewParameterSet(parse("--max-results=25", "--bytes=1099511627776",
			"--permission=READWRITE", "--statuses=Active,Complete"), testParams, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(ps.Int32("max-results")).To(HaveValue(Equal(int32(25))))
		Expect(ps.Int64("bytes")).To(HaveValue(Equal(int64(1099511627776))))
		Expect(cmdlet.Enum[types.Permission](ps, "permission")).To(Equal(types.PermissionReadwrite))
		Expect(cmdlet.EnumList[types.JobStatus](ps, "statuses")).To(Equal([]types.JobStatus{types.JobStatusActive, types.JobStatusComplete}))
	})

	It("should resolve an alias to its canonical parameter", func() {
		ps, err := cmdlet.NewParameterSet(parse("--access-point-name=ap1"), testParams, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(ps.Supplied("name")).To(BeTrue())
		Expect(ps.String("name")).To(HaveValue(Equal("ap1")))
	})

	It("should reject a parameter combined with its alias", func() {
		_, err := cmdlet.NewParameterSet(parse("--name=ap1", "--access-point-name=ap2"), testParams, nil)
		Expect(err).To(HaveOccurred())

		var verr *cmdlet.ValidationError
		Expect(err).To(BeAssignableToTypeOf(verr))
		Expect(err.Error()).To(ContainSubstring("--name and --access-point-name"))
	})

	It("should warn, not fail, when a required parameter is missing or empty", func() {
		ps, err := cmdlet.NewParameterSet(parse("--prefixes="), testParams, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(ps.Warnings()).To(ConsistOf(
			"required parameter --account-id was not supplied",
			"required parameter --prefixes is empty",
		))
	})

	It("should use fallbacks for string parameters that were not supplied", func() {
		ps, err := cmdlet.NewParameterSet(parse("--prefixes=a"), testParams, map[string]string{"account-id": "123456789012"})
		Expect(err).NotTo(HaveOccurred())
		Expect(ps.Warnings()).To(BeEmpty())
		Expect(ps.String("account-id")).To(HaveValue(Equal("123456789012")))

		ps, err = cmdlet.NewParameterSet(parse("--prefixes=a", "--account-id=210987654321"), testParams, map[string]string{"account-id": "123456789012"})
		Expect(err).NotTo(HaveOccurred())
		Expect(ps.String("account-id")).To(HaveValue(Equal("210987654321")))
	})

	It("should echo supplied values through Value", func() {
		ps, err := cmdlet.NewParameterSet(parse("--max-results=7", "--name=ap1"), testParams, nil)
		Expect(err).NotTo(HaveOccurred())

		v, ok := ps.Value("max-results")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(int32(7)))

		_, ok = ps.Value("bytes")
		Expect(ok).To(BeFalse())
	})

	Describe("DecodeJSON", func() {
		It("should decode inline documents into SDK types", func() {
			ps, err := cmdlet.NewParameterSet(parse(`--tags=[{"Key":"team","Value":"storage"}]`), testParams, nil)
			Expect(err).NotTo(HaveOccurred())

			var tags []types.S3Tag
			Expect(cmdlet.DecodeJSON(ps, "tags", &tags)).To(Succeed())
			Expect(tags).To(HaveLen(1))
			Expect(tags[0].Key).To(HaveValue(Equal("team")))
			Expect(tags[0].Value).To(HaveValue(Equal("storage")))
		})

		It("should read file:// documents from disk", func() {
			path := filepath.Join(GinkgoT().TempDir(), "tags.json")
			Expect(os.WriteFile(path, []byte(`[{"Key":"k","Value":"v"}]`), 0o600)).To(Succeed())

			ps, err := cmdlet.NewParameterSet(parse("--tags=file://"+path), testParams, nil)
			Expect(err).NotTo(HaveOccurred())

			var tags []types.S3Tag
			Expect(cmdlet.DecodeJSON(ps, "tags", &tags)).To(Succeed())
			Expect(tags).To(HaveLen(1))
		})

		It("should leave the target untouched when not supplied", func() {
			ps, err := cmdlet.NewParameterSet(parse(), testParams, nil)
			Expect(err).NotTo(HaveOccurred())

			var tags []types.S3Tag
			Expect(cmdlet.DecodeJSON(ps, "tags", &tags)).To(Succeed())
			Expect(tags).To(BeNil())
		})

		It("should report malformed documents as validation errors", func() {
			ps, err := cmdlet.NewParameterSet(parse("--tags={"), testParams, nil)
			Expect(err).NotTo(HaveOccurred())

			var tags []types.S3Tag
			err = cmdlet.DecodeJSON(ps, "tags", &tags)
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&cmdlet.ValidationError{}))
		})
	})

	Describe("Document", func() {
		It("should return the raw document text", func() {
			ps, err := cmdlet.NewParameterSet(parse(`--tags={"Version":"2012-10-17"}`), testParams, nil)
			Expect(err).NotTo(HaveOccurred())

			doc, err := cmdlet.Document(ps, "tags")
			Expect(err).NotTo(HaveOccurred())
			Expect(doc).To(HaveValue(Equal(`{"Version":"2012-10-17"}`)))
		})

		It("should fail on a missing file", func() {
			ps, err := cmdlet.NewParameterSet(parse("--tags=file:///does/not/exist.json"), testParams, nil)
			Expect(err).NotTo(HaveOccurred())

			_, err = cmdlet.Document(ps, "tags")
			Expect(err).To(MatchError(ContainSubstring("cannot read --tags document")))
		})
	})
})
