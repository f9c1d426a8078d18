package quotes

import (
	"net/http"

	"github.com/kingcapco/salesops-backend/api/responses"
	"github.com/kingcapco/salesops-backend/api/validators"
	"github.com/kingcapco/salesops-backend/internal/export"
	"github.com/kingcapco/salesops-backend/internal/pricing"
	pkgerrors "github.com/kingcapco/salesops-backend/pkg/errors"
	"github.com/kingcapco/salesops-backend/pkg/logger"
)

// Options returns every style, decoration method, add-on, accessory, and
// shipping choice the rate book publishes.
func Options(engine *pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing engine unavailable"))
			return
		}
		responses.WriteSuccess(w, engine.Options())
	}
}

// Domestic prices a domestic configuration without persisting anything.
func Domestic(engine *pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing engine unavailable"))
			return
		}

		var req DomesticQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := engine.QuoteDomestic(req.toEngine())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDomesticQuoteResponse(quote))
	}
}

// Overseas prices an overseas configuration without persisting anything.
func Overseas(engine *pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing engine unavailable"))
			return
		}

		var req OverseasQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := engine.QuoteOverseas(req.toEngine())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOverseasQuoteResponse(quote))
	}
}

// DomesticExport streams the domestic quote as a workbook download.
func DomesticExport(exporter *export.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if exporter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exporter unavailable"))
			return
		}

		var req DomesticQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := exporter.DomesticQuoteXLSX(r.Context(), req.toEngine(), req.DesignNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteDocument(w, doc.ContentType, doc.Filename, doc.Data)
	}
}

// OverseasExport streams the overseas quote as a workbook download.
func OverseasExport(exporter *export.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if exporter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exporter unavailable"))
			return
		}

		var req OverseasQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := exporter.OverseasQuoteXLSX(r.Context(), req.toEngine(), req.DesignNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteDocument(w, doc.ContentType, doc.Filename, doc.Data)
	}
}

// SheetExport streams a combined workbook covering several designs.
func SheetExport(exporter *export.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if exporter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exporter unavailable"))
			return
		}

		var req QuoteSheetExportRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := exporter.QuoteSheetXLSX(r.Context(), req.toExport())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteDocument(w, doc.ContentType, doc.Filename, doc.Data)
	}
}
