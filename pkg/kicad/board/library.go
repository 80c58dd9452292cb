package board

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mcbridejc/kicad-component-layout/pkg/kicad/sexp"
	"github.com/mcbridejc/kicad-component-layout/pkg/layout"
)

// loadFootprintFile reads <name>.kicad_mod from a .pretty library directory
// and returns a detached footprint instance ready to be placed on a board.
func loadFootprintFile(dir, name string) (*Footprint, error) {
	path := filepath.Join(dir, name+".kicad_mod")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, layout.ErrFootprintNotFound)
		}
		return nil, fmt.Errorf("failed to open footprint file: %w", err)
	}
	defer f.Close()

	root, err := sexp.ParseOne(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// KiCad 5 wrote (module ...); everything since writes (footprint ...)
	if root.Name() != "footprint" && root.Name() != "module" {
		return nil, fmt.Errorf("%s: not a footprint file (root is '%s')", path, root.Name())
	}
	if root.Name() == "module" {
		root.Children[0] = sexp.Symbol("footprint")
	}

	fp := &Footprint{node: root}
	prepareInstance(fp, dir, name)
	return fp, nil
}

// prepareInstance turns a library definition into a placeable instance:
// library-qualified id, front copper layer, a placement node, and fresh
// unique identifiers so the new instance cannot collide with board history.
func prepareInstance(fp *Footprint, dir, name string) {
	if !strings.Contains(fp.Identity(), ":") {
		nickname := strings.TrimSuffix(filepath.Base(dir), ".pretty")
		setIdentity(fp.node, nickname+":"+name)
	}

	if fp.node.Child("layer") == nil {
		layer := sexp.List(sexp.Symbol("layer"), sexp.String("F.Cu"))
		rest := append([]*sexp.Node{layer}, fp.node.Children[2:]...)
		fp.node.Children = append(fp.node.Children[:2], rest...)
	}

	fp.ensureAt()
	refreshIdentifiers(fp.node)
}

func setIdentity(node *sexp.Node, id string) {
	if node.Len() > 1 {
		node.Children[1] = sexp.String(id)
		return
	}
	node.Append(sexp.String(id))
}

// refreshIdentifiers regenerates every uuid/tstamp in the subtree. The
// lexical kind of the original atom is kept, since KiCad 6 wrote tstamps as
// bare symbols while newer versions quote uuids.
func refreshIdentifiers(root *sexp.Node) {
	root.Walk(func(n *sexp.Node) {
		name := n.Name()
		if name != "uuid" && name != "tstamp" {
			return
		}
		fresh := uuid.NewString()
		if n.Len() > 1 {
			n.Children[1].Value = fresh
		} else {
			n.Append(sexp.String(fresh))
		}
	})
}
