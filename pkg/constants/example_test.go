package constants_test

import (
	"fmt"

	"github.com/agentstation/schemasync/pkg/constants"
)

// Example demonstrates building deployment descriptions
func Example() {
	fmt.Printf(constants.DeploymentDescriptionFormat+"\n", constants.DefaultStageName)
	fmt.Printf(constants.StageDescriptionFormat+"\n", "prod")
	// Output:
	// Deployment to dev stage
	// Deployed to prod stage
}
