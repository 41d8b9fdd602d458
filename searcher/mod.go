package searcher

// Hyperparameters for ISMCTS

// DefaultExploration is the UCB1 exploration constant balancing between
// exploitation and exploration.
const DefaultExploration = 0.8

// DefaultIterations is the iteration budget used when none is configured.
const DefaultIterations = 1000
