// compileinfoprint is imported for the side effect of logging the compileinfo
// to stderr when a binary starts.
package compileinfoprint

import "github.com/carbocation/tagrecount/compileinfo"

func init() {
	compileinfo.Log()
}
