package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	"github.com/turtacn/AtomSense/internal/infrastructure/chemio"
	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// PerceptionHandler serves classification requests and stored results.
type PerceptionHandler struct {
	svc         *app.Service
	store       app.ResultStore
	defaultMode perception.Mode
}

// NewPerceptionHandler builds the handler. store may be nil when no result
// store is configured; lookups then answer 503.
func NewPerceptionHandler(svc *app.Service, store app.ResultStore, defaultMode perception.Mode) *PerceptionHandler {
	if defaultMode == 0 {
		defaultMode = perception.ModePermissive
	}
	return &PerceptionHandler{svc: svc, store: store, defaultMode: defaultMode}
}

// atomDoc is one atom of a JSON molecule document.
type atomDoc struct {
	Symbol    string `json:"symbol"`
	Charge    *int   `json:"charge,omitempty"`
	Hydrogens *int   `json:"hydrogens,omitempty"`
	Aromatic  bool   `json:"aromatic,omitempty"`
	Pseudo    bool   `json:"pseudo,omitempty"`
}

// bondDoc is one bond of a JSON molecule document; order 0 means unset.
type bondDoc struct {
	Begin    int  `json:"begin"`
	End      int  `json:"end"`
	Order    int  `json:"order"`
	Aromatic bool `json:"aromatic,omitempty"`
}

type moleculeDoc struct {
	Name  string    `json:"name"`
	Atoms []atomDoc `json:"atoms"`
	Bonds []bondDoc `json:"bonds"`
}

// perceiveRequest accepts either a raw molfile or a JSON molecule document.
type perceiveRequest struct {
	Mode     string       `json:"mode"`
	Molfile  string       `json:"molfile"`
	Molecule *moleculeDoc `json:"molecule"`
}

// Perceive handles POST /api/v1/perceptions.
func (h *PerceptionHandler) Perceive(c *gin.Context) {
	var req perceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("malformed request body").WithDetail(err.Error()))
		return
	}

	mode := h.defaultMode
	if req.Mode != "" {
		parsed, err := perception.ParseMode(req.Mode)
		if err != nil {
			respondError(c, err)
			return
		}
		mode = parsed
	}

	mol, err := buildMolecule(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.svc.Perceive(c.Request.Context(), mol, mode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func buildMolecule(req *perceiveRequest) (*molecule.Molecule, error) {
	switch {
	case req.Molfile != "" && req.Molecule != nil:
		return nil, errors.InvalidParam("provide either molfile or molecule, not both")
	case req.Molfile != "":
		return chemio.ParseMol(req.Molfile)
	case req.Molecule != nil:
		return buildFromDoc(req.Molecule)
	default:
		return nil, errors.InvalidParam("a molfile or molecule document is required")
	}
}

func buildFromDoc(doc *moleculeDoc) (*molecule.Molecule, error) {
	if len(doc.Atoms) == 0 {
		return nil, errors.New(errors.ErrCodeMoleculeInvalid, "molecule document has no atoms")
	}

	mol := molecule.New()
	mol.Title = doc.Name

	atoms := make([]*molecule.Atom, len(doc.Atoms))
	for i, ad := range doc.Atoms {
		var a *molecule.Atom
		if ad.Pseudo {
			a = molecule.NewPseudoAtom(ad.Symbol)
		} else {
			var err error
			a, err = molecule.NewAtom(ad.Symbol)
			if err != nil {
				return nil, err
			}
		}
		if ad.Charge != nil {
			a.SetCharge(*ad.Charge)
		}
		if ad.Hydrogens != nil {
			a.SetImplicitHydrogens(*ad.Hydrogens)
		}
		a.Aromatic = ad.Aromatic
		atoms[i] = mol.AddAtom(a)
	}

	for i, bd := range doc.Bonds {
		if bd.Begin < 0 || bd.Begin >= len(atoms) || bd.End < 0 || bd.End >= len(atoms) {
			return nil, errors.New(errors.ErrCodeMoleculeInvalid, "bond references an atom outside the document").
				WithDetail("bond " + strconv.Itoa(i))
		}
		var order chem.BondOrder
		switch bd.Order {
		case 0:
			order = chem.OrderUnset
		case 1:
			order = chem.OrderSingle
		case 2:
			order = chem.OrderDouble
		case 3:
			order = chem.OrderTriple
		case 4:
			order = chem.OrderQuadruple
		default:
			return nil, errors.New(errors.ErrCodeMoleculeInvalid, "unknown bond order").
				WithDetail("bond " + strconv.Itoa(i))
		}
		bond, err := mol.AddBond(atoms[bd.Begin], atoms[bd.End], order)
		if err != nil {
			return nil, err
		}
		if bd.Aromatic {
			bond.Aromatic = true
			if order == chem.OrderUnset {
				bond.SingleOrDouble = true
			}
		}
	}
	return mol, nil
}

// Get handles GET /api/v1/perceptions/:id.
func (h *PerceptionHandler) Get(c *gin.Context) {
	if h.store == nil {
		respondError(c, errors.New(errors.ErrCodeServiceUnavailable, "result store is not configured"))
		return
	}
	res, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// List handles GET /api/v1/perceptions?limit=N.
func (h *PerceptionHandler) List(c *gin.Context) {
	if h.store == nil {
		respondError(c, errors.New(errors.ErrCodeServiceUnavailable, "result store is not configured"))
		return
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 200 {
			respondError(c, errors.InvalidParam("limit must be between 1 and 200"))
			return
		}
		limit = n
	}
	out, err := h.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": out, "count": len(out)})
}
