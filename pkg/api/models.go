package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// GasStationList represents the response structure from the fuel price API.
type GasStationList struct {
	Fecha             string       `json:"Fecha"`
	ListaEESSPrecio   []GasStation `json:"ListaEESSPrecio"`
	Nota              string       `json:"Nota"`
	ResultadoConsulta string       `json:"ResultadoConsulta"`
}

// GasStation represents a single raw fuel station record as published by the
// feed. Every value is text; decimals use a comma separator.
type GasStation struct {
	CP                      Field `json:"C.P."`
	Direccion               Field `json:"Dirección"`
	Horario                 Field `json:"Horario"`
	Latitud                 Field `json:"Latitud"`
	Localidad               Field `json:"Localidad"`
	Longitud                Field `json:"Longitud (WGS84)"`
	Margen                  Field `json:"Margen"`
	Municipio               Field `json:"Municipio"`
	PrecioBiodiesel         Field `json:"Precio Biodiesel"`
	PrecioBioetanol         Field `json:"Precio Bioetanol"`
	PrecioGasNaturalComp    Field `json:"Precio Gas Natural Comprimido"`
	PrecioGasNaturalLicuado Field `json:"Precio Gas Natural Licuado"`
	PrecioGasesLicuados     Field `json:"Precio Gases licuados del petróleo"`
	PrecioGasoleoA          Field `json:"Precio Gasoleo A"`
	PrecioGasoleoB          Field `json:"Precio Gasoleo B"`
	PrecioGasoleoPremium    Field `json:"Precio Gasoleo Premium"`
	PrecioGasolina95E10     Field `json:"Precio Gasolina 95 E10"`
	PrecioGasolina95E5      Field `json:"Precio Gasolina 95 E5"`
	PrecioGasolina95E5Prem  Field `json:"Precio Gasolina 95 E5 Premium"`
	PrecioGasolina98E10     Field `json:"Precio Gasolina 98 E10"`
	PrecioGasolina98E5      Field `json:"Precio Gasolina 98 E5"`
	PrecioHidrogeno         Field `json:"Precio Hidrogeno"`
	Provincia               Field `json:"Provincia"`
	Remision                Field `json:"Remisión"`
	Rotulo                  Field `json:"Rótulo"`
	TipoVenta               Field `json:"Tipo Venta"`
	PorcentajeBioEtanol     Field `json:"% BioEtanol"`
	PorcentajeEsterMetilico Field `json:"% Éster metílico"`
	IDEESS                  Field `json:"IDEESS"`
	IDMunicipio             Field `json:"IDMunicipio"`
	IDProvincia             Field `json:"IDProvincia"`
	IDCCAA                  Field `json:"IDCCAA"`
}

// Field is a feed value. It decodes from a JSON string, number, boolean or
// null so that one oddly typed value never rejects the whole payload.
type Field string

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	case data[0] == '{', data[0] == '[':
		// Objects and arrays carry nothing we can use.
		*f = ""
		return nil
	default:
		*f = Field(data)
		return nil
	}
}

// String returns the value with surrounding whitespace removed.
func (f Field) String() string {
	return strings.TrimSpace(string(f))
}
