package resume

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce   sync.Once
	structValidator *validator.Validate
)

func documentValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("sectiontype", func(fl validator.FieldLevel) bool {
			return IsSectionType(fl.Field().String())
		})
		_ = v.RegisterValidation("item", func(fl validator.FieldLevel) bool {
			item, ok := fl.Field().Interface().(Item)
			if !ok {
				return false
			}
			if item.ID() == "" {
				return false
			}
			if hidden, present := item["hidden"]; present {
				if _, ok := hidden.(bool); !ok {
					return false
				}
			}
			return true
		})
		v.RegisterStructValidation(validateSections, Data{})
		structValidator = v
	})
	return structValidator
}

// validateSections 要求 sections 恰好包含全部内置板块，且每个板块的 ID 与键一致。
func validateSections(sl validator.StructLevel) {
	d := sl.Current().Interface().(Data)
	for _, id := range BuiltinSections {
		section, ok := d.Sections[id]
		if !ok {
			sl.ReportError(d.Sections, "Sections["+id+"]", "Sections", "builtinsection", id)
			continue
		}
		if section.ID != id {
			sl.ReportError(section.ID, "Sections["+id+"].ID", "ID", "sectionid", id)
		}
	}
	for key := range d.Sections {
		if !IsBuiltinSection(key) {
			sl.ReportError(d.Sections, "Sections["+key+"]", "Sections", "builtinsection", key)
		}
	}
}

// Validate 校验文档结构：内置板块集合、板块列数、自定义板块类型、条目 ID 以及至少一页布局。
func Validate(d *Data) error {
	if d == nil {
		return fmt.Errorf("resume data is nil")
	}
	if err := documentValidator().Struct(d); err != nil {
		return fmt.Errorf("validate resume data: %w", err)
	}
	return nil
}
