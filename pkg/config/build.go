package config

import (
	"fmt"
	"strings"

	"github.com/ied-protocol/ied-go/pkg/model"
)

// Build constructs a wired model tree from the declaration: all levels of
// the hierarchy, then the datasets, then the report control blocks. The
// returned server is ready for reads and EnableReport.
func (s *Server) Build() (*model.Server, error) {
	server := model.NewServer(s.Name)

	for _, ldCfg := range s.LogicalDevices {
		ld, err := server.AddLogicalDevice(ldCfg.Name)
		if err != nil {
			return nil, err
		}

		for _, lnCfg := range ldCfg.LogicalNodes {
			ln, err := ld.AddLogicalNode(lnCfg.Name)
			if err != nil {
				return nil, err
			}

			for _, doCfg := range lnCfg.DataObjects {
				do, err := ln.AddDataObject(doCfg.Name)
				if err != nil {
					return nil, err
				}
				for _, daCfg := range doCfg.Attributes {
					if _, err := do.AddAttribute(daCfg.Name, daCfg.Value); err != nil {
						return nil, err
					}
				}
			}

			// Datasets before reports: report creation requires the
			// dataset to be registered on the node already.
			for _, dsCfg := range lnCfg.Datasets {
				members, err := resolveMembers(ln, dsCfg.Members)
				if err != nil {
					return nil, fmt.Errorf("dataset %q on %s: %w", dsCfg.Name, ln.Path(), err)
				}
				if _, err := ln.CreateDataset(dsCfg.Name, members); err != nil {
					return nil, err
				}
			}

			for _, rptCfg := range lnCfg.Reports {
				if _, err := ln.CreateReport(rptCfg.Name, rptCfg.Dataset, rptCfg.ReportID); err != nil {
					return nil, err
				}
			}
		}
	}

	return server, nil
}

// resolveMembers resolves node-relative member references
// (DataObject.DataAttribute) against the built node.
func resolveMembers(ln *model.LogicalNode, refs []string) ([]*model.DataAttribute, error) {
	members := make([]*model.DataAttribute, 0, len(refs))
	for _, ref := range refs {
		doName, daName, ok := strings.Cut(ref, ".")
		if !ok {
			return nil, fmt.Errorf("member %q must be DataObject.DataAttribute", ref)
		}
		do, found := ln.DataObject(doName)
		if !found {
			return nil, fmt.Errorf("member %q: data object %q not found", ref, doName)
		}
		da, found := do.Attribute(daName)
		if !found {
			return nil, fmt.Errorf("member %q: attribute %q not found on %s", ref, daName, do.Path())
		}
		members = append(members, da)
	}
	return members, nil
}
