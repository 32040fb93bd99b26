package archive_test

import (
	"github.com/anviltools/anvil-templates/archive"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Archive Model", func() {

	DescribeTable("valid model configurations",
		func(model archive.Model) {
			err := model.Validate()
			Expect(err).ToNot(HaveOccurred())
		},
		Entry("explicit s3 driver", archive.Model{
			Driver:          "s3",
			Bucket:          "some-bucket",
			AccessKeyID:     "some-key",
			SecretAccessKey: "some-secret",
		}),
		Entry("implicit driver", archive.Model{
			Bucket:          "some-bucket",
			AccessKeyID:     "some-key",
			SecretAccessKey: "some-secret",
		}),
		Entry("custom endpoint and prefix", archive.Model{
			Bucket:          "some-bucket",
			BucketPath:      "some-prefix",
			AccessKeyID:     "some-key",
			SecretAccessKey: "some-secret",
			RegionName:      "eu-west-1",
			Endpoint:        "storage.example.com",
			RunName:         "some-run",
		}),
	)

	DescribeTable("invalid model configurations",
		func(model archive.Model, expectedMessage string) {
			err := model.Validate()
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring(expectedMessage))
		},
		Entry("unknown driver", archive.Model{
			Driver: "gcs",
			Bucket: "some-bucket",
		}, "Unknown value for `archive.driver`"),
		Entry("missing bucket", archive.Model{
			AccessKeyID:     "some-key",
			SecretAccessKey: "some-secret",
		}, "Missing fields: 'archive.bucket'"),
		Entry("missing credentials", archive.Model{
			Bucket: "some-bucket",
		}, "Missing fields: 'archive.access_key_id', 'archive.secret_access_key'"),
	)

	It("treats an empty bucket as archiving disabled", func() {
		Expect(archive.Model{}.IsConfigured()).To(BeFalse())
		Expect(archive.Model{Bucket: "some-bucket"}.IsConfigured()).To(BeTrue())
	})

	It("knows a zero version from a real one", func() {
		Expect(archive.Version{}.IsZero()).To(BeTrue())
		Expect(archive.Version{Filename: "some-file"}.IsZero()).To(BeFalse())
	})
})
