// Example: Full Delegation Lifecycle
//
// Demonstrates the end-to-end flow through the control plane:
//   1. Register agents with reputation and permissions
//   2. Create and decompose a task into a subtask DAG
//   3. Assignment: publish an RFP, score bids, build and sign a contract
//   4. Attenuate permissions down the delegation chain
//   5. Monitoring: checkpoints, SLO checks, heartbeat watchdog
//   6. Verification (direct inspection + game-theoretic consensus) and
//      reputation update
//   7. Adaptive coordination on a simulated failure
//   8. Security: threat detection and circuit breakers
//   9. A disputed verification, taken through the resolution state machine
//
// Agent registrations, the contract, checkpoints, reputation updates and the
// dispute are recorded to the hash-chained ledger; task state changes and
// verification outcomes are not.
package main

import (
	"context"
	"crypto/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ed25519"

	"github.com/kaito2/panopticon/assignment"
	"github.com/kaito2/panopticon/coordinator"
	"github.com/kaito2/panopticon/decomposition"
	"github.com/kaito2/panopticon/dispute"
	"github.com/kaito2/panopticon/ledger"
	"github.com/kaito2/panopticon/monitoring"
	"github.com/kaito2/panopticon/permissions"
	"github.com/kaito2/panopticon/reputation"
	"github.com/kaito2/panopticon/security"
	"github.com/kaito2/panopticon/types"
	"github.com/kaito2/panopticon/verification"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	// ═══════════════════════════════════════════════════════════════
	// STEP 1: Bring up the ledger and register agents
	// ═══════════════════════════════════════════════════════════════

	chain := ledger.NewMerkleLedger()
	repEngine := reputation.NewEngine(chain)

	orchestrator := types.NewAgent("Task Orchestrator")
	orchestrator.Permissions = types.PermissionSet{
		AllowedActions:             []string{"plan", "decompose", "coordinate", "data_analysis", "code_review"},
		MaxDelegationDepth:         3,
		MaxCostBudget:              500.0,
		AllowedDataClassifications: []string{"public", "internal"},
	}

	coder := types.NewAgent("Code Specialist")
	coder.Capabilities.Capabilities = []types.Capability{
		{Name: "go", Proficiency: 0.9, Certified: true},
		{Name: "code_review", Proficiency: 0.8, Certified: true},
	}
	coder.Permissions = types.PermissionSet{
		AllowedActions:             []string{"code_review"},
		MaxDelegationDepth:         1,
		MaxCostBudget:              100.0,
		AllowedDataClassifications: []string{"public"},
	}

	analyst := types.NewAgent("Data Analyst")
	analyst.Capabilities.Capabilities = []types.Capability{
		{Name: "data_analysis", Proficiency: 0.85, Certified: true},
		{Name: "sql", Proficiency: 0.7},
	}
	analyst.Permissions = types.PermissionSet{
		AllowedActions:             []string{"data_analysis"},
		MaxDelegationDepth:         1,
		MaxCostBudget:              80.0,
		AllowedDataClassifications: []string{"public"},
	}

	agents := []*types.Agent{orchestrator, coder, analyst}
	for _, a := range agents {
		prevHash := chain.LatestHash()
		entry := ledger.NewEntry(ledger.AgentRegistered, a.ID, a.ID, map[string]interface{}{"name": a.Name}, prevHash)
		if err := chain.Append(entry); err != nil {
			log.Fatal().Err(err).Msg("failed to record agent registration")
		}
	}
	log.Info().Int("count", len(agents)).Msg("agents registered")

	// ═══════════════════════════════════════════════════════════════
	// STEP 2: Create and decompose a task
	// ═══════════════════════════════════════════════════════════════

	deadline := time.Now().Add(24 * time.Hour)
	rootTask := types.NewTask("Build Analytics Dashboard", "Full-stack dashboard with data pipeline and visualization")
	rootTask.Deadline = &deadline
	rootTask.RequiredCapabilities = []string{"go", "data_analysis"}
	rootTask.Characteristics = types.Characteristics{
		Complexity:         0.7,
		Criticality:        0.6,
		Uncertainty:        0.3,
		Verifiability:      0.7,
		Reversibility:      0.8,
		TimeSensitivity:    0.5,
		ResourceIntensity:  0.5,
		PrivacySensitivity: 0.3,
		HumanInteraction:   0.4,
		Novelty:            0.3,
		Interdependency:    0.4,
	}
	if err := rootTask.ApplyEvent(types.EventStartDecomposition); err != nil {
		log.Fatal().Err(err).Msg("start decomposition")
	}

	strategy := decomposition.DefaultHybridStrategy()
	proposal, err := strategy.Decompose(rootTask)
	if err != nil {
		log.Fatal().Err(err).Msg("decompose task")
	}
	if !proposal.IsAcyclic() {
		log.Fatal().Msg("decomposition produced a cyclic subtask graph")
	}
	if err := rootTask.ApplyEvent(types.EventDecompositionComplete); err != nil {
		log.Fatal().Err(err).Msg("complete decomposition")
	}
	log.Info().Str("strategy", strategy.Name()).Int("subtasks", len(proposal.Subtasks)).Msg("task decomposed")

	subtask := proposal.Subtasks[0]
	subtask.RequiredCapabilities = []string{"data_analysis"}

	// ═══════════════════════════════════════════════════════════════
	// STEP 3: Assignment — RFP, bids, contract
	// ═══════════════════════════════════════════════════════════════

	matcher := assignment.NewCapabilityMatcher(0.3)
	candidates := matcher.FilterAgents(subtask, []*types.Agent{coder, analyst})
	log.Info().Int("candidates", len(candidates)).Msg("filtered candidate agents")

	rfp := assignment.NewRFP(subtask.ID, subtask.RequiredCapabilities, 50.0).WithDeadline(deadline)
	bids := []assignment.Bid{
		assignment.NewBid(analyst.ID, rfp.TaskID, 22.0, 10800, 0.9),
		assignment.NewBid(coder.ID, rfp.TaskID, 18.0, 14400, 0.6),
	}

	evaluator := assignment.DefaultBidEvaluator()
	ranked := evaluator.Evaluate(bids, rfp.MaxCost, func(agentID uuid.UUID) float64 {
		for _, a := range agents {
			if a.ID == agentID {
				return a.Reputation.Composite()
			}
		}
		return 0.5
	})

	for i, sb := range ranked {
		log.Info().Int("rank", i+1).Str("agent", sb.Bid.AgentID.String()).Float64("score", sb.TotalScore).Msg("scored bid")
	}
	winningBid := ranked[0].Bid

	contract, err := assignment.NewContractBuilder().
		TaskID(subtask.ID).
		DelegatorID(orchestrator.ID).
		DelegateeID(winningBid.AgentID).
		PaymentTerms(types.PaymentTerms{TotalAmount: winningBid.ProposedCost, EscrowAmount: winningBid.ProposedCost * 0.2}).
		MonitoringTerms(types.MonitoringTerms{CheckpointIntervalSecs: 1800, MinQualityScore: 0.7, MaxResourceBudget: 30.0}).
		DisputeResolutionTerms(types.DisputeResolutionTerms{DisputeBond: 10.0, ResolutionTimeoutSecs: 86400, PanelSize: 3, EscalationEnabled: true}).
		PermittedActions([]string{"data_analysis"}).
		Build()
	if err != nil {
		log.Fatal().Err(err).Msg("build contract")
	}
	contract.SignedByDelegator = true
	contract.SignedByDelegatee = true
	subtask.AssignedAgentID = &contract.DelegateeID
	subtask.ContractID = &contract.ID

	prevHash := chain.LatestHash()
	chain.Append(ledger.NewEntry(ledger.ContractCreated, orchestrator.ID, contract.ID, contract, prevHash))
	log.Info().Str("contract_id", contract.ID.String()).Msg("contract signed")

	// ═══════════════════════════════════════════════════════════════
	// STEP 4: Permission attenuation down the delegation chain
	// ═══════════════════════════════════════════════════════════════

	childRequest := types.PermissionSet{
		AllowedActions:             []string{"data_analysis"},
		MaxDelegationDepth:         1,
		MaxCostBudget:              30.0,
		AllowedDataClassifications: []string{"public"},
	}
	attenuated, err := permissions.Attenuate(orchestrator.Permissions, childRequest)
	if err != nil {
		log.Fatal().Err(err).Msg("attenuate permissions")
	}
	analyst.Permissions = attenuated
	log.Info().Uint32("max_delegation_depth", attenuated.MaxDelegationDepth).Float64("max_cost_budget", attenuated.MaxCostBudget).Msg("permissions attenuated")

	approval, err := permissions.CheckPermission(analyst, subtask)
	if err != nil {
		log.Warn().Err(err).Msg("permission check failed")
	} else {
		log.Info().Str("level", approval.Level.String()).Uint32("approvers", approval.RequiredApprovers).Msg("approval requirement computed")
	}

	// ═══════════════════════════════════════════════════════════════
	// STEP 5: Monitoring — checkpoints, SLOs, heartbeat
	// ═══════════════════════════════════════════════════════════════

	for _, event := range []types.TaskEvent{
		types.EventSkipDecomposition,
		types.EventStartNegotiation,
		types.EventNegotiationComplete,
		types.EventStartExecution,
	} {
		if err := subtask.ApplyEvent(event); err != nil {
			log.Fatal().Err(err).Msg("advance subtask state")
		}
	}

	checkpointCh := make(chan monitoring.Checkpoint, 8)
	eventCh := make(chan monitoring.MonitoringEvent, 8)
	sloChecker := monitoring.SloChecker{Definitions: []monitoring.SloDefinition{
		{MetricName: "resource_consumed", Threshold: 25.0, Comparison: monitoring.LessThan, WindowSecs: 3600},
	}}
	monConfig := monitoring.DefaultMonitoringConfig()
	monConfig.HeartbeatCheckInterval = 20 * time.Millisecond
	metricsRegistry := prometheus.NewRegistry()
	monMetrics := monitoring.NewMetrics(metricsRegistry)
	monLoop := monitoring.NewMonitoringLoop(checkpointCh, eventCh, sloChecker, chain, monConfig).WithMetrics(monMetrics)
	monLoop.TrackDeadline(rootTask.ID, deadline)

	ctx, cancel := context.WithCancel(context.Background())
	go monLoop.Run(ctx)

	go func() {
		for evt := range eventCh {
			switch evt.Kind {
			case monitoring.EventCheckpointReceived:
				log.Info().Str("task", evt.TaskID.String()).Float64("progress", evt.ProgressPct).Msg("checkpoint received")
			case monitoring.EventSloViolation:
				log.Warn().Str("metric", evt.Violation.Definition.MetricName).Float64("actual", evt.Violation.ActualValue).Msg("SLO violation")
			case monitoring.EventAgentUnresponsive:
				log.Warn().Str("agent", evt.AgentID.String()).Msg("agent unresponsive")
			case monitoring.EventTaskTimeout:
				log.Warn().Str("task", evt.TaskID.String()).Msg("task deadline exceeded")
			}
		}
	}()

	checkpointCh <- monitoring.NewCheckpoint(subtask.ID, winningBid.AgentID).WithProgress(0.5).WithResourceConsumed(12.0).WithStatus("transform phase in progress")
	checkpointCh <- monitoring.NewCheckpoint(subtask.ID, winningBid.AgentID).WithProgress(1.0).WithResourceConsumed(27.5).WithStatus("pipeline complete, tests passing")
	time.Sleep(50 * time.Millisecond)

	// ═══════════════════════════════════════════════════════════════
	// STEP 6: Verification and reputation update
	// ═══════════════════════════════════════════════════════════════

	if err := subtask.ApplyEvent(types.EventExecutionComplete); err != nil {
		log.Fatal().Err(err).Msg("complete execution")
	}

	result := &verification.TaskResult{
		TaskID:           subtask.ID,
		AgentID:          winningBid.AgentID,
		Output:           map[string]interface{}{"tests_passed": 42.0, "coverage": 0.89},
		CompletedAt:      time.Now().UTC(),
		ResourceConsumed: 27.5,
	}

	direct := verification.NewDirectInspectionVerifier([]string{"tests_passed", "coverage"})
	outcome, err := direct.Verify(subtask, result)
	if err != nil {
		log.Fatal().Err(err).Msg("direct inspection verify")
	}
	log.Info().Str("verifier", direct.Name()).Bool("passed", outcome.IsPassed()).Float64("confidence", outcome.Confidence).Msg("verification outcome")

	gtVerifier := verification.NewGameTheoreticVerifier([]verification.Assessment{
		{AgentID: orchestrator.ID, Approved: true},
		{AgentID: coder.ID, Approved: true},
	}, 0.66)
	consensusOutcome, _ := gtVerifier.Verify(subtask, result)
	log.Info().Bool("passed", consensusOutcome.IsPassed()).Interface("rewarded", gtVerifier.RewardedAgents()).Msg("game-theoretic consensus")

	if outcome.IsPassed() {
		if err := subtask.ApplyEvent(types.EventVerificationPassed); err != nil {
			log.Fatal().Err(err).Msg("apply verification passed")
		}
	}

	if _, err := repEngine.UpdateReputation(reputation.Observation{
		AgentID:   winningBid.AgentID,
		TaskID:    subtask.ID,
		Dimension: reputation.Quality,
		Value:     0.92,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		log.Fatal().Err(err).Msg("update reputation")
	}
	composite, _ := repEngine.GetCompositeScore(winningBid.AgentID)
	log.Info().Float64("composite", composite).Msg("reputation updated")

	// Credential-chain verification for the delegation: orchestrator -> analyst
	issuerPub, issuerPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatal().Err(err).Msg("generate issuer key")
	}
	credential := verification.IssueCredential(orchestrator.ID, analyst.ID, map[string]string{"role": "delegatee"}, nil, issuerPriv)
	if err := verification.VerifyCredentialChain([]verification.VerifiableCredential{credential}, []ed25519.PublicKey{issuerPub}); err != nil {
		log.Warn().Err(err).Msg("credential chain verification failed")
	} else {
		log.Info().Msg("credential chain verified")
	}

	// ═══════════════════════════════════════════════════════════════
	// STEP 7: Adaptive coordination on a simulated failure
	// ═══════════════════════════════════════════════════════════════

	triggerCh := make(chan coordinator.CoordinationTrigger, 4)
	responseCh := make(chan *coordinator.ResponsePlan, 4)
	coord := coordinator.NewCoordinator(triggerCh, responseCh)
	go coord.Run(ctx)

	triggerCh <- coordinator.FromInternal(coordinator.InternalTrigger{
		Kind:    coordinator.AgentUnresponsive,
		TaskID:  rootTask.ID,
		AgentID: coder.ID,
	})

	select {
	case plan := <-responseCh:
		coordinator.ExecuteResponse(plan)
	case <-time.After(time.Second):
		log.Warn().Msg("no coordination response received")
	}

	// ═══════════════════════════════════════════════════════════════
	// STEP 8: Security — threat detection and circuit breakers
	// ═══════════════════════════════════════════════════════════════

	behavioral := security.NewBehavioralDetector(3, 5, 300)
	threatCtx := security.ThreatContext{
		AgentID:      coder.ID,
		Capabilities: []string{"go", "python", "shell", "network", "filesystem"},
	}
	alerts, _ := behavioral.Detect(threatCtx)
	for _, alert := range alerts {
		log.Warn().Str("category", alert.Category.String()).Str("severity", alert.Severity.String()).Msg(alert.Description)
	}

	registry := security.NewCircuitBreakerRegistry(3, 60, 0.3)
	registry.RecordFailure(coder.ID)
	registry.RecordFailure(coder.ID)
	if tripped := registry.RecordFailure(coder.ID); tripped != nil {
		log.Warn().Str("agent", coder.ID.String()).Str("state", tripped.String()).Msg("circuit breaker tripped")
	}
	if err := registry.CheckAgent(coder.ID); err != nil {
		log.Warn().Err(err).Msg("agent blocked by circuit breaker")
	}

	// ═══════════════════════════════════════════════════════════════
	// STEP 9: A disputed verification
	// ═══════════════════════════════════════════════════════════════

	failureReason := "quality score mismatch against the third reviewer's assessment"
	if coordinator.IsDisputable(failureReason) {
		log.Info().Str("reason", failureReason).Msg("verification failure reads as contested; routing through dispute lifecycle")
	}

	d := dispute.NewDispute(subtask.ID, orchestrator.ID, winningBid.AgentID, 10.0)
	prevHash = chain.LatestHash()
	chain.Append(ledger.NewEntry(ledger.DisputeOpened, orchestrator.ID, d.ID, map[string]interface{}{"task_id": d.TaskID}, prevHash))

	for _, event := range []dispute.Event{dispute.DepositBond, dispute.RunAlgorithm, dispute.RequestPanel, dispute.Adjudicate} {
		if err := d.ApplyEvent(event); err != nil {
			log.Fatal().Err(err).Msg("dispute transition")
		}
	}
	if err := d.Resolve(dispute.Resolution{Kind: dispute.InFavorOfRespondent}); err != nil {
		log.Fatal().Err(err).Msg("resolve dispute")
	}
	prevHash = chain.LatestHash()
	chain.Append(ledger.NewEntry(ledger.DisputeResolved, orchestrator.ID, d.ID, map[string]interface{}{"state": d.State.String()}, prevHash))
	log.Info().Str("state", d.State.String()).Msg("dispute settled")

	// ═══════════════════════════════════════════════════════════════

	monLoop.UntrackDeadline(rootTask.ID)
	cancel()
	close(checkpointCh)
	close(triggerCh)
	time.Sleep(20 * time.Millisecond)

	if proof, ok := chain.Proof(0); ok {
		leaf := chain.AllEntries()[0]
		log.Info().Bool("proof_valid", chain.VerifyProof(ledger.LeafHash(leaf), proof)).Str("root", chain.RootHex()).Msg("merkle inclusion proof checked")
	}

	families, err := metricsRegistry.Gather()
	if err != nil {
		log.Warn().Err(err).Msg("gather metrics")
	} else {
		for _, family := range families {
			log.Info().Str("metric", family.GetName()).Int("samples", len(family.GetMetric())).Msg("monitoring metric")
		}
	}

	log.Info().Bool("ledger_intact", chain.VerifyIntegrity()).Int("entries", len(chain.AllEntries())).Msg("delegation lifecycle complete")
}
