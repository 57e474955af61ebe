package schema

import (
	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func nestedA() Forest {
	return Forest{
		{ID: "A", Key: "a", Payload: Children{
			{ID: "B", Key: "b", Payload: StringValue("x")},
		}},
	}
}

var _ = Describe("Tree", func() {
	var fac *Factory

	BeforeEach(func() {
		fac = NewFactory(&SequenceGenerator{last: 100})
	})

	Describe("AddField", func() {
		It("should append to the top level without a parent", func() {
			forest, field, result := fac.AddField(nestedA(), "")
			Expect(result).To(Equal(Applied))
			Expect(forest).To(HaveLen(2))
			Expect(forest[1]).To(BeIdenticalTo(field))
			Expect(field.Key).To(Equal("field_101"))
		})

		It("should append a default String child to a nested parent", func() {
			forest := Forest{{ID: "A", Key: "a", Payload: Children{}}}
			forest, field, result := fac.AddField(forest, "A")
			Expect(result).To(Equal(Applied))

			children := forest[0].Children()
			Expect(children).To(HaveLen(1))
			Expect(children[0]).To(BeIdenticalTo(field))
			Expect(field.Type()).To(Equal(String))
			Expect(field.Payload).To(Equal(StringValue("")))
		})

		It("should find nested parents at any depth", func() {
			forest := Forest{
				{ID: "A", Key: "a", Payload: Children{
					{ID: "B", Key: "b", Payload: Children{}},
				}},
			}
			forest, _, result := fac.AddField(forest, "B")
			Expect(result).To(Equal(Applied))
			Expect(forest[0].Children()[0].Children()).To(HaveLen(1))
		})

		It("should leave the forest unchanged for a missing parent", func() {
			forest, field, result := fac.AddField(nestedA(), "ghost")
			Expect(result).To(Equal(NotFound))
			Expect(field).To(BeNil())
			Expect(cmp.Diff(nestedA(), forest)).To(BeEmpty())
		})

		It("should reject a scalar parent", func() {
			forest, _, result := fac.AddField(nestedA(), "B")
			Expect(result).To(Equal(Rejected))
			Expect(cmp.Diff(nestedA(), forest)).To(BeEmpty())
		})

		It("should not consume ids when nothing is added", func() {
			fac.AddField(nestedA(), "ghost")
			_, field, _ := fac.AddField(Forest{}, "")
			Expect(field.ID).To(Equal("101"))
		})
	})

	Describe("UpdateField", func() {
		It("should merge the key and keep everything else", func() {
			forest, result := UpdateField(nestedA(), "B", SetKey("renamed"))
			Expect(result).To(Equal(Applied))

			want := nestedA()
			want[0].Children()[0].Key = "renamed"
			Expect(cmp.Diff(want, forest)).To(BeEmpty())
		})

		It("should replace the payload", func() {
			forest, result := UpdateField(nestedA(), "B", SetPayload(NumberValue(42)))
			Expect(result).To(Equal(Applied))
			Expect(forest[0].Children()[0].Payload).To(Equal(NumberValue(42)))
		})

		It("should leave the forest unchanged for a missing id", func() {
			forest, result := UpdateField(nestedA(), "ghost", SetKey("x"))
			Expect(result).To(Equal(NotFound))
			Expect(cmp.Diff(nestedA(), forest)).To(BeEmpty())
		})

		It("should reject grafting existing children", func() {
			forest := nestedA()
			_, result := UpdateField(forest, "A", SetPayload(Children{forest[0]}))
			Expect(result).To(Equal(Rejected))
			Expect(cmp.Diff(nestedA(), forest)).To(BeEmpty())
		})
	})

	Describe("ChangeType", func() {
		It("should clear the value when switching to Nested", func() {
			forest := Forest{{ID: "1", Key: "name", Payload: StringValue("Alice")}}
			forest, result := ChangeType(forest, "1", Nested)
			Expect(result).To(Equal(Applied))

			field := forest[0]
			Expect(field.Type()).To(Equal(Nested))
			Expect(field.Children()).To(BeEmpty())
			_, hasValue := field.Value()
			Expect(hasValue).To(BeFalse())

			v, ok := Serialize(forest).Get("name")
			Expect(ok).To(BeTrue())
			Expect(v.(*Object).Len()).To(Equal(0))
		})

		It("should drop children when switching to String", func() {
			forest, result := ChangeType(nestedA(), "A", String)
			Expect(result).To(Equal(Applied))
			Expect(forest[0].Children()).To(BeNil())
			Expect(forest[0].Payload).To(Equal(StringValue("")))
		})

		It("should default Number to zero", func() {
			forest, _ := ChangeType(nestedA(), "B", Number)
			Expect(forest[0].Children()[0].Payload).To(Equal(NumberValue(0)))
		})
	})

	Describe("DeleteField", func() {
		It("should remove the whole subtree", func() {
			forest, result := DeleteField(nestedA(), "A")
			Expect(result).To(Equal(Applied))
			Expect(forest).To(BeEmpty())
			_, ok := FindFieldByID(forest, "B")
			Expect(ok).To(BeFalse())
		})

		It("should remove nested fields", func() {
			forest, result := DeleteField(nestedA(), "B")
			Expect(result).To(Equal(Applied))
			Expect(forest).To(HaveLen(1))
			Expect(forest[0].Children()).To(BeEmpty())
		})

		It("should remove every duplicate at any depth", func() {
			forest := Forest{
				{ID: "X", Key: "top"},
				{ID: "A", Key: "a", Payload: Children{
					{ID: "X", Key: "inner"},
					{ID: "C", Key: "c"},
				}},
			}
			forest, result := DeleteField(forest, "X")
			Expect(result).To(Equal(Applied))
			Expect(forest).To(HaveLen(1))
			Expect(forest[0].Children()).To(HaveLen(1))
			Expect(forest[0].Children()[0].ID).To(Equal("C"))
		})

		It("should leave the forest unchanged for a missing id", func() {
			forest, result := DeleteField(nestedA(), "ghost")
			Expect(result).To(Equal(NotFound))
			Expect(cmp.Diff(nestedA(), forest)).To(BeEmpty())
		})
	})

	Describe("FindFieldByID", func() {
		It("should return the first match depth-first", func() {
			forest := Forest{
				{ID: "A", Key: "a", Payload: Children{
					{ID: "D", Key: "deep"},
				}},
				{ID: "D", Key: "shallow"},
			}
			field, ok := FindFieldByID(forest, "D")
			Expect(ok).To(BeTrue())
			Expect(field.Key).To(Equal("deep"))
		})

		It("should report absence", func() {
			field, ok := FindFieldByID(nestedA(), "ghost")
			Expect(ok).To(BeFalse())
			Expect(field).To(BeNil())
		})
	})
})
