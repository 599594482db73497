package platformoptions_test

import (
	"github.com/zdscale/redislifecycle/platformoptions"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Platformoptions", func() {
	var (
		platformOptions *platformoptions.PlatformOptions
		err             error
		jsonValue       string
	)

	JustBeforeEach(func() {
		platformOptions, err = platformoptions.Get(jsonValue)
	})

	Context("when the options value is an empty JSON object", func() {
		BeforeEach(func() {
			jsonValue = "{}"
		})

		It("returns an unset PlatformOptions", func() {
			Expect(err).ToNot(HaveOccurred())
			Expect(platformOptions).To(Equal(&platformoptions.PlatformOptions{}))
		})
	})

	Context("when the options value is invalid JSON", func() {
		BeforeEach(func() {
			jsonValue = `{"credhub-uri":"missing quote and brace`
		})

		It("returns a nil PlatformOptions with an error", func() {
			Expect(platformOptions).To(BeNil())
			Expect(err).To(HaveOccurred())
		})
	})

	Context("when the options value is a valid JSON object", func() {
		BeforeEach(func() {
			jsonValue = `{"credhub-uri":"https://credhub.example.com:8844"}`
		})

		It("returns populated PlatformOptions", func() {
			Expect(err).ToNot(HaveOccurred())
			Expect(platformOptions.CredhubURI).To(Equal("https://credhub.example.com:8844"))
		})

		It("returns the cached PlatformOptions when the value is gone on a later call", func() {
			cached, err := platformoptions.Get("")
			Expect(err).ToNot(HaveOccurred())
			Expect(cached).NotTo(BeNil())
			Expect(cached.CredhubURI).To(Equal("https://credhub.example.com:8844"))
		})
	})
})
