// Package config loads simulated server models from YAML declarations.
//
// A model file declares the whole tree below one server: logical devices,
// logical nodes, data objects, attributes with initial values, datasets,
// and report control blocks. It plays the role the SCL/ICD file plays for
// a real IED, reduced to the parts this simulation models.
//
//	name: MySubstation_IED_001
//	logicalDevices:
//	  - name: Protection
//	    logicalNodes:
//	      - name: MMXU1
//	        dataObjects:
//	          - name: PhV
//	            attributes:
//	              - name: phsA.cVal.mag.f
//	                value: 220.0
//	        datasets:
//	          - name: dsMeas
//	            members: [PhV.phsA.cVal.mag.f]
//	        reports:
//	          - name: urcb01
//	            dataset: dsMeas
//	            reportId: MyIED/Protection/MMXU1$RP$urcb01
//
// Dataset members are node-relative: DataObject.DataAttribute, where the
// attribute part may itself be dotted. Build wires the declared datasets
// and report control blocks, so a loaded server is ready for EnableReport
// without further setup.
package config
