package pages

import (
	"net/http"

	"github.com/angelmondragon/teastore-backend/internal/categories"
	"github.com/angelmondragon/teastore-backend/internal/origins"
	"github.com/angelmondragon/teastore-backend/internal/permissions"
	"github.com/angelmondragon/teastore-backend/internal/teas"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
)

func viewPerm(entity string) string {
	return permissions.Codename(enums.PermissionActionView, entity)
}

type teaFormData struct {
	Categories     []categories.CategoryDTO
	Origins        []origins.OriginDTO
	TeaTypes       []enums.TeaType
	CaffeineLevels []enums.CaffeineLevel
}

func (h *Handler) teaList(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, viewPerm(permissions.EntityTea)) {
		return
	}
	rows, err := h.deps.Teas.List(r.Context(), teas.ListTeasInput{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "tea_list", view{Title: "Teas", Data: rows})
}

func (h *Handler) teaDetail(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, viewPerm(permissions.EntityTea)) {
		return
	}
	id, ok := routeID(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	tea, err := h.deps.Teas.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "tea_detail", view{Title: "Teas", Data: tea})
}

func (h *Handler) teaNew(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	h.renderTeaForm(w, r, http.StatusOK, view{})
}

func (h *Handler) renderTeaForm(w http.ResponseWriter, r *http.Request, status int, v view) {
	cats, err := h.deps.Categories.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	origs, err := h.deps.Origins.List(r.Context(), origins.ListOriginsInput{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	v.Title = "Teas"
	v.Data = teaFormData{
		Categories:     cats,
		Origins:        origs,
		TeaTypes:       enums.TeaTypes(),
		CaffeineLevels: enums.CaffeineLevels(),
	}
	h.render(w, r, status, "tea_form", v)
}

func (h *Handler) teaCreate(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	form, err := readForm(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, i18n.MsgValidationFailed)
		return
	}
	input := teas.CreateTeaInput{
		Name:          form.text("name"),
		Description:   form.text("description"),
		OriginID:      form.uuid("origin_id", false),
		TeaType:       enums.TeaType(form.text("tea_type")),
		CaffeineLevel: enums.CaffeineLevel(form.text("caffeine_level")),
		Price:         form.decimal("price"),
		StockQty:      form.integer("stock_qty"),
		IsActive:      form.checkbox("is_active"),
	}
	if category := form.uuid("category_id", true); category != nil {
		input.CategoryID = *category
	}

	err = form.err()
	if err == nil {
		_, err = h.deps.Teas.Create(r.Context(), input)
	}
	if err != nil {
		if problems, ok := formErrors(r.Context(), err); ok {
			h.renderTeaForm(w, r, http.StatusBadRequest, view{Form: form.values, Errors: problems})
			return
		}
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/teas", http.StatusSeeOther)
}

func (h *Handler) teaDelete(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	id, ok := routeID(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	if err := h.deps.Teas.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/teas", http.StatusSeeOther)
}

func (h *Handler) categoryList(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, viewPerm(permissions.EntityTeaCategory)) {
		return
	}
	rows, err := h.deps.Categories.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "category_list", view{Title: "Categories", Data: rows})
}

func (h *Handler) categoryDetail(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, viewPerm(permissions.EntityTeaCategory)) {
		return
	}
	id, ok := routeID(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	category, err := h.deps.Categories.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "category_detail", view{Title: "Categories", Data: category})
}

func (h *Handler) categoryNew(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	h.render(w, r, http.StatusOK, "category_form", view{Title: "Categories"})
}

func (h *Handler) categoryCreate(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	form, err := readForm(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, i18n.MsgValidationFailed)
		return
	}
	_, err = h.deps.Categories.Create(r.Context(), categories.CreateCategoryInput{
		Name:        form.text("name"),
		Description: form.text("description"),
	})
	if err != nil {
		if problems, ok := formErrors(r.Context(), err); ok {
			h.render(w, r, http.StatusBadRequest, "category_form", view{Title: "Categories", Form: form.values, Errors: problems})
			return
		}
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *Handler) categoryDelete(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	id, ok := routeID(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	if err := h.deps.Categories.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *Handler) originList(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, viewPerm(permissions.EntityOrigin)) {
		return
	}
	rows, err := h.deps.Origins.List(r.Context(), origins.ListOriginsInput{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "origin_list", view{Title: "Origins", Data: rows})
}

func (h *Handler) originDetail(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, viewPerm(permissions.EntityOrigin)) {
		return
	}
	id, ok := routeID(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	origin, err := h.deps.Origins.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "origin_detail", view{Title: "Origins", Data: origin})
}

func (h *Handler) originNew(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	h.render(w, r, http.StatusOK, "origin_form", view{Title: "Origins"})
}

func (h *Handler) originCreate(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	form, err := readForm(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, i18n.MsgValidationFailed)
		return
	}
	_, err = h.deps.Origins.Create(r.Context(), origins.CreateOriginInput{
		CountryCode: form.text("country_code"),
		Region:      form.text("region"),
		FarmName:    form.text("farm_name"),
		IsOrganic:   form.checkbox("is_organic"),
	})
	if err != nil {
		if problems, ok := formErrors(r.Context(), err); ok {
			h.render(w, r, http.StatusBadRequest, "origin_form", view{Title: "Origins", Form: form.values, Errors: problems})
			return
		}
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/origins", http.StatusSeeOther)
}

func (h *Handler) originDelete(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	id, ok := routeID(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	if err := h.deps.Origins.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/origins", http.StatusSeeOther)
}
