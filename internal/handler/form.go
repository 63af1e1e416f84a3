package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"propertypulse/internal/models"
	"propertypulse/internal/service"
)

// propertyForm is the explicit schema for a listing submission. Dotted form
// keys (location.city, rates.weekly, seller_info.email) map onto named
// fields; anything required that is missing fails validation instead of
// turning into an empty attribute.
type propertyForm struct {
	Type        string `validate:"required"`
	Name        string `validate:"required"`
	Description string
	Street      string `validate:"required"`
	City        string `validate:"required"`
	State       string `validate:"required"`
	Zipcode     string `validate:"required"`
	Beds        string `validate:"required,numeric"`
	Baths       string `validate:"required,numeric"`
	SquareFeet  string `validate:"required,numeric"`
	RateWeekly  string `validate:"omitempty,numeric"`
	RateMonthly string `validate:"omitempty,numeric"`
	RateNightly string `validate:"omitempty,numeric"`
	SellerName  string `validate:"required"`
	SellerEmail string `validate:"required,email"`
	SellerPhone string
}

func formFromRequest(r *http.Request) propertyForm {
	return propertyForm{
		Type:        r.FormValue("type"),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Street:      r.FormValue("location.street"),
		City:        r.FormValue("location.city"),
		State:       r.FormValue("location.state"),
		Zipcode:     r.FormValue("location.zipcode"),
		Beds:        r.FormValue("beds"),
		Baths:       r.FormValue("baths"),
		SquareFeet:  r.FormValue("square_feet"),
		RateWeekly:  r.FormValue("rates.weekly"),
		RateMonthly: r.FormValue("rates.monthly"),
		RateNightly: r.FormValue("rates.nightly"),
		SellerName:  r.FormValue("seller_info.name"),
		SellerEmail: r.FormValue("seller_info.email"),
		SellerPhone: r.FormValue("seller_info.phone"),
	}
}

// decodePropertyInput turns a validated multipart submission into a service
// input. The caller must have parsed the multipart form already.
func (h *Handlers) decodePropertyInput(r *http.Request) (service.PropertyInput, error) {
	form := formFromRequest(r)

	if err := h.Validate.Struct(form); err != nil {
		return service.PropertyInput{}, fmt.Errorf("invalid listing submission: %w", err)
	}

	beds, err := strconv.Atoi(form.Beds)
	if err != nil {
		return service.PropertyInput{}, fmt.Errorf("invalid beds value: %w", err)
	}
	baths, err := strconv.ParseFloat(form.Baths, 64)
	if err != nil {
		return service.PropertyInput{}, fmt.Errorf("invalid baths value: %w", err)
	}
	squareFeet, err := strconv.Atoi(form.SquareFeet)
	if err != nil {
		return service.PropertyInput{}, fmt.Errorf("invalid square_feet value: %w", err)
	}

	rates := models.Rates{
		Weekly:  optionalRate(form.RateWeekly),
		Monthly: optionalRate(form.RateMonthly),
		Nightly: optionalRate(form.RateNightly),
	}

	amenities := r.Form["amenities"]
	if amenities == nil {
		amenities = []string{}
	}

	return service.PropertyInput{
		Type:        form.Type,
		Name:        form.Name,
		Description: form.Description,
		Location: models.Location{
			Street:  form.Street,
			City:    form.City,
			State:   form.State,
			Zipcode: form.Zipcode,
		},
		Beds:       beds,
		Baths:      baths,
		SquareFeet: squareFeet,
		Amenities:  amenities,
		Rates:      rates,
		SellerInfo: models.SellerInfo{
			Name:  form.SellerName,
			Email: form.SellerEmail,
			Phone: form.SellerPhone,
		},
	}, nil
}

func optionalRate(value string) *float64 {
	if value == "" {
		return nil
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &rate
}

// imageFileHeaders returns the submitted image files in submission order,
// excluding the empty placeholder a file input sends when nothing was
// selected.
func imageFileHeaders(r *http.Request) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}

	headers := []*multipart.FileHeader{}
	for _, header := range r.MultipartForm.File["images"] {
		if header.Filename == "" {
			continue
		}
		headers = append(headers, header)
	}

	return headers
}
